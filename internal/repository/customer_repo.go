package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/younes-radi/order-app/internal/domain"
)

type sqliteCustomerRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteCustomerRepository(db *sql.DB, logger *logrus.Logger) domain.CustomerRepository {
	return &sqliteCustomerRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteCustomerRepository) CreateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	query := `INSERT INTO customers (name, contact_number, email, address) VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, customer.Name, customer.ContactNumber, nullableString(customer.Email), customer.Address)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			r.log.Warnf("Duplicate customer email: %s", customer.Email)
			return nil, fmt.Errorf("%w: a customer with email %s already exists", domain.ErrConflict, customer.Email)
		}
		r.log.Errorf("Failed to insert customer %s: %v", customer.Name, err)
		return nil, fmt.Errorf("could not create customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new customer id: %w", err)
	}
	customer.ID = id

	r.log.Infof("Customer created with ID: %d", customer.ID)
	return customer, nil
}

func (r *sqliteCustomerRepository) GetCustomerByID(id int64) (*domain.Customer, error) {
	query := `SELECT customer_id, name, contact_number, email, address FROM customers WHERE customer_id = ?`

	customer, err := scanCustomer(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch customer %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch customer: %w", err)
	}
	return customer, nil
}

func (r *sqliteCustomerRepository) GetCustomerByEmail(email string) (*domain.Customer, error) {
	query := `SELECT customer_id, name, contact_number, email, address FROM customers WHERE email = ?`

	customer, err := scanCustomer(r.db.QueryRow(query, email).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer with email %s", domain.ErrNotFound, email)
		}
		r.log.Errorf("Failed to fetch customer by email %s: %v", email, err)
		return nil, fmt.Errorf("could not fetch customer: %w", err)
	}
	return customer, nil
}

func (r *sqliteCustomerRepository) UpdateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	query := `UPDATE customers SET name = ?, contact_number = ?, email = ?, address = ? WHERE customer_id = ?`

	res, err := r.db.Exec(query, customer.Name, customer.ContactNumber, nullableString(customer.Email), customer.Address, customer.ID)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return nil, fmt.Errorf("%w: a customer with email %s already exists", domain.ErrConflict, customer.Email)
		}
		r.log.Errorf("Failed to update customer %d: %v", customer.ID, err)
		return nil, fmt.Errorf("could not update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, customer.ID)
	}
	return customer, nil
}

func (r *sqliteCustomerRepository) DeleteCustomer(id int64) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE customer_id = ?`, id)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return fmt.Errorf("%w: customer %d is referenced by existing orders", domain.ErrConflict, id)
		}
		r.log.Errorf("Failed to delete customer %d: %v", id, err)
		return fmt.Errorf("could not delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
	}

	r.log.Infof("Customer deleted with ID: %d", id)
	return nil
}

func (r *sqliteCustomerRepository) ListCustomers() ([]domain.Customer, error) {
	query := `SELECT customer_id, name, contact_number, email, address FROM customers ORDER BY customer_id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list customers: %v", err)
		return nil, fmt.Errorf("could not list customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *sqliteCustomerRepository) SearchCustomers(query string) ([]domain.Customer, error) {
	stmt := `SELECT customer_id, name, contact_number, email, address FROM customers
		WHERE name LIKE ? OR email LIKE ? OR contact_number LIKE ?
		ORDER BY customer_id`
	pattern := "%" + query + "%"

	rows, err := r.db.Query(stmt, pattern, pattern, pattern)
	if err != nil {
		r.log.Errorf("Failed to search customers for %q: %v", query, err)
		return nil, fmt.Errorf("could not search customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func scanCustomer(scan func(dest ...any) error) (*domain.Customer, error) {
	var customer domain.Customer
	var contact, email, address sql.NullString

	if err := scan(&customer.ID, &customer.Name, &contact, &email, &address); err != nil {
		return nil, err
	}
	customer.ContactNumber = contact.String
	customer.Email = email.String
	customer.Address = address.String
	return &customer, nil
}

func collectCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan customer row: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate customer rows: %w", err)
	}
	return customers, nil
}
