package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/younes-radi/order-app/internal/domain"
)

type sqliteProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &sqliteProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `INSERT INTO products (name, sku, description, price, stock_quantity) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query, product.Name, product.SKU, product.Description, product.Price, product.StockQuantity)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			r.log.Warnf("Duplicate product SKU: %s", product.SKU)
			return nil, fmt.Errorf("%w: a product with SKU %s already exists", domain.ErrConflict, product.SKU)
		}
		r.log.Errorf("Failed to insert product %s: %v", product.SKU, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new product id: %w", err)
	}
	product.ID = id

	r.log.Infof("Product created with ID: %d (SKU: %s)", product.ID, product.SKU)
	return product, nil
}

func (r *sqliteProductRepository) GetProductByID(id int64) (*domain.Product, error) {
	query := `SELECT product_id, name, sku, description, price, stock_quantity FROM products WHERE product_id = ?`

	product, err := scanProduct(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch product %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch product: %w", err)
	}
	return product, nil
}

func (r *sqliteProductRepository) GetProductBySKU(sku string) (*domain.Product, error) {
	query := `SELECT product_id, name, sku, description, price, stock_quantity FROM products WHERE sku = ?`

	product, err := scanProduct(r.db.QueryRow(query, sku).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product with SKU %s", domain.ErrNotFound, sku)
		}
		r.log.Errorf("Failed to fetch product by SKU %s: %v", sku, err)
		return nil, fmt.Errorf("could not fetch product: %w", err)
	}
	return product, nil
}

func (r *sqliteProductRepository) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	query := `UPDATE products SET name = ?, sku = ?, description = ?, price = ?, stock_quantity = ? WHERE product_id = ?`

	res, err := r.db.Exec(query, product.Name, product.SKU, product.Description, product.Price, product.StockQuantity, product.ID)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return nil, fmt.Errorf("%w: a product with SKU %s already exists", domain.ErrConflict, product.SKU)
		}
		r.log.Errorf("Failed to update product %d: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, product.ID)
	}
	return product, nil
}

func (r *sqliteProductRepository) DeleteProduct(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return fmt.Errorf("%w: product %d is referenced by existing orders", domain.ErrConflict, id)
		}
		r.log.Errorf("Failed to delete product %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	r.log.Infof("Product deleted with ID: %d", id)
	return nil
}

func (r *sqliteProductRepository) ListProducts() ([]domain.Product, error) {
	query := `SELECT product_id, name, sku, description, price, stock_quantity FROM products ORDER BY product_id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *sqliteProductRepository) SearchProducts(query string) ([]domain.Product, error) {
	stmt := `SELECT product_id, name, sku, description, price, stock_quantity FROM products
		WHERE name LIKE ? OR sku LIKE ? OR description LIKE ?
		ORDER BY product_id`
	pattern := "%" + query + "%"

	rows, err := r.db.Query(stmt, pattern, pattern, pattern)
	if err != nil {
		r.log.Errorf("Failed to search products for %q: %v", query, err)
		return nil, fmt.Errorf("could not search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *sqliteProductRepository) ListLowStockProducts(threshold int) ([]domain.Product, error) {
	query := `SELECT product_id, name, sku, description, price, stock_quantity FROM products
		WHERE stock_quantity <= ?
		ORDER BY stock_quantity ASC`

	rows, err := r.db.Query(query, threshold)
	if err != nil {
		r.log.Errorf("Failed to list low stock products: %v", err)
		return nil, fmt.Errorf("could not list low stock products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func scanProduct(scan func(dest ...any) error) (*domain.Product, error) {
	var product domain.Product
	var description sql.NullString

	if err := scan(&product.ID, &product.Name, &product.SKU, &description, &product.Price, &product.StockQuantity); err != nil {
		return nil, err
	}
	product.Description = description.String
	return &product, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate product rows: %w", err)
	}
	return products, nil
}
