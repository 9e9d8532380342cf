package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/younes-radi/order-app/internal/domain"
)

type sqlitePaymentRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLitePaymentRepository(db *sql.DB, logger *logrus.Logger) domain.PaymentRepository {
	return &sqlitePaymentRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqlitePaymentRepository) CreatePayment(payment *domain.Payment) (*domain.Payment, error) {
	query := `INSERT INTO payments (order_id, payment_date, amount, payment_type, status, reference_number)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		payment.OrderID,
		formatTime(payment.PaymentDate),
		payment.Amount,
		payment.Type,
		payment.Status,
		nullableString(payment.ReferenceNumber),
	)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return nil, fmt.Errorf("%w: order %d does not exist", domain.ErrConflict, payment.OrderID)
		}
		r.log.Errorf("Failed to insert payment for order %d: %v", payment.OrderID, err)
		return nil, fmt.Errorf("could not create payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new payment id: %w", err)
	}
	payment.ID = id

	r.log.Infof("Payment created with ID: %d for order: %d", payment.ID, payment.OrderID)
	return payment, nil
}

func (r *sqlitePaymentRepository) GetPaymentByID(id int64) (*domain.Payment, error) {
	query := `SELECT payment_id, order_id, payment_date, amount, payment_type, status, reference_number
		FROM payments WHERE payment_id = ?`

	payment, err := scanPayment(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch payment %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch payment: %w", err)
	}
	return payment, nil
}

func (r *sqlitePaymentRepository) UpdatePayment(payment *domain.Payment) (*domain.Payment, error) {
	query := `UPDATE payments SET amount = ?, payment_type = ?, status = ?, reference_number = ? WHERE payment_id = ?`

	res, err := r.db.Exec(query, payment.Amount, payment.Type, payment.Status, nullableString(payment.ReferenceNumber), payment.ID)
	if err != nil {
		r.log.Errorf("Failed to update payment %d: %v", payment.ID, err)
		return nil, fmt.Errorf("could not update payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, payment.ID)
	}
	return payment, nil
}

func (r *sqlitePaymentRepository) ListPaymentsByOrder(orderID int64) ([]domain.Payment, error) {
	query := `SELECT payment_id, order_id, payment_date, amount, payment_type, status, reference_number
		FROM payments WHERE order_id = ?
		ORDER BY payment_date`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		r.log.Errorf("Failed to list payments for order %d: %v", orderID, err)
		return nil, fmt.Errorf("could not list payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate payment rows: %w", err)
	}
	return payments, nil
}

func scanPayment(scan func(dest ...any) error) (*domain.Payment, error) {
	var payment domain.Payment
	var paymentDate string
	var reference sql.NullString

	if err := scan(&payment.ID, &payment.OrderID, &paymentDate, &payment.Amount, &payment.Type, &payment.Status, &reference); err != nil {
		return nil, err
	}

	parsed, err := parseTime(paymentDate)
	if err != nil {
		return nil, fmt.Errorf("could not parse payment date %q: %w", paymentDate, err)
	}
	payment.PaymentDate = parsed
	payment.ReferenceNumber = reference.String
	return &payment, nil
}
