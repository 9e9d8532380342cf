package db

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/younes-radi/order-app/internal/domain"
)

// SeedDefaultData fills empty tables with the default roles and users plus
// a handful of sample customers and products. Every table is checked
// individually, so running the seed on each start never duplicates rows.
func SeedDefaultData(conn *sql.DB, log *logrus.Logger) error {
	count, err := countRows(conn, "roles")
	if err != nil {
		return err
	}
	if count == 0 {
		roles := []domain.Role{
			{ID: 1, Name: domain.RoleAdmin, Description: "Full access to all features"},
			{ID: 2, Name: domain.RoleCashier, Description: "Can process orders and payments"},
		}
		for _, role := range roles {
			_, err := conn.Exec(
				"INSERT INTO roles (role_id, name, description) VALUES (?, ?, ?)",
				role.ID, role.Name, role.Description,
			)
			if err != nil {
				return fmt.Errorf("seed role %s: %w", role.Name, err)
			}
		}
		log.Info("Seed: default roles created")
	}

	count, err = countRows(conn, "users")
	if err != nil {
		return err
	}
	if count == 0 {
		users := []struct {
			username string
			password string
			fullName string
			email    string
			roleID   int64
		}{
			{"admin", "admin123", "Administrator", "admin@example.com", 1},
			{"cashier", "cashier123", "Cashier User", "cashier@example.com", 2},
		}
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}
			_, err = conn.Exec(
				"INSERT INTO users (username, password_hash, full_name, email, role_id) VALUES (?, ?, ?, ?, ?)",
				u.username, string(hash), u.fullName, u.email, u.roleID,
			)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
		}
		log.Info("Seed: default users created")
	}

	count, err = countRows(conn, "customers")
	if err != nil {
		return err
	}
	if count == 0 {
		customers := []domain.Customer{
			{Name: "John Doe", ContactNumber: "555-1234", Email: "john.doe@example.com", Address: "123 Main St, Anytown"},
			{Name: "Jane Smith", ContactNumber: "555-5678", Email: "jane.smith@example.com", Address: "456 Oak Ave, Somewhere"},
			{Name: "Bob Johnson", ContactNumber: "555-9012", Email: "bob.johnson@example.com", Address: "789 Pine Rd, Elsewhere"},
		}
		for _, c := range customers {
			_, err := conn.Exec(
				"INSERT INTO customers (name, contact_number, email, address) VALUES (?, ?, ?, ?)",
				c.Name, c.ContactNumber, c.Email, c.Address,
			)
			if err != nil {
				return fmt.Errorf("seed customer %s: %w", c.Name, err)
			}
		}
		log.Info("Seed: sample customers created")
	}

	count, err = countRows(conn, "products")
	if err != nil {
		return err
	}
	if count == 0 {
		products := []domain.Product{
			{Name: "Laptop", SKU: "TECH001", Description: "High-performance laptop", Price: 999.99, StockQuantity: 10},
			{Name: "Smartphone", SKU: "TECH002", Description: "Latest smartphone model", Price: 699.99, StockQuantity: 15},
			{Name: "Tablet", SKU: "TECH003", Description: "10-inch tablet", Price: 349.99, StockQuantity: 20},
			{Name: "Headphones", SKU: "ACC001", Description: "Wireless noise-canceling headphones", Price: 149.99, StockQuantity: 30},
			{Name: "Mouse", SKU: "ACC002", Description: "Wireless ergonomic mouse", Price: 29.99, StockQuantity: 50},
		}
		for _, p := range products {
			_, err := conn.Exec(
				"INSERT INTO products (name, sku, description, price, stock_quantity) VALUES (?, ?, ?, ?, ?)",
				p.Name, p.SKU, p.Description, p.Price, p.StockQuantity,
			)
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.SKU, err)
			}
		}
		log.Info("Seed: sample products created")
	}

	return nil
}

func countRows(conn *sql.DB, table string) (int, error) {
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
