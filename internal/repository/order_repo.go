package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/younes-radi/order-app/internal/domain"
)

type sqliteOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &sqliteOrderRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteOrderRepository) CreateOrder(order *domain.Order) (created *domain.Order, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			r.log.Errorf("Failed to commit transaction: %v", cErr)
			created, err = nil, fmt.Errorf("could not commit transaction: %w", cErr)
		}
	}()

	orderQuery := `INSERT INTO orders (customer_id, order_date, status, total_cost) VALUES (?, ?, ?, ?)`

	res, err := tx.Exec(orderQuery, order.CustomerID, formatTime(order.OrderDate), order.Status, order.TotalCost)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, order.CustomerID)
		}
		r.log.Errorf("Failed to insert order for customer %d: %v", order.CustomerID, err)
		return nil, fmt.Errorf("could not create order: %w", err)
	}

	order.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new order id: %w", err)
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		itemRes, itemErr := tx.Exec(itemQuery, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
		if itemErr != nil {
			err = fmt.Errorf("could not create order item for product %d: %w", item.ProductID, itemErr)
			r.log.Errorf("Failed to insert order item (product_id: %d) for order %d: %v", item.ProductID, order.ID, itemErr)
			return nil, err
		}
		item.ID, err = itemRes.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("could not read new order item id: %w", err)
		}
	}

	r.log.Infof("Order created with ID: %d for customer: %d", order.ID, order.CustomerID)
	return order, nil
}

func (r *sqliteOrderRepository) GetOrderByID(id int64) (*domain.Order, error) {
	query := `SELECT order_id, customer_id, order_date, status, total_cost FROM orders WHERE order_id = ?`

	order, err := scanOrder(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch order %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch order: %w", err)
	}

	order.Items, err = queryOrderItems(r.db, order.ID)
	if err != nil {
		r.log.Errorf("Failed to fetch items for order %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

// UpdateOrder persists the order row only. Line items are managed through
// the order item repository.
func (r *sqliteOrderRepository) UpdateOrder(order *domain.Order) (*domain.Order, error) {
	query := `UPDATE orders SET customer_id = ?, order_date = ?, status = ?, total_cost = ? WHERE order_id = ?`

	res, err := r.db.Exec(query, order.CustomerID, formatTime(order.OrderDate), order.Status, order.TotalCost, order.ID)
	if err != nil {
		r.log.Errorf("Failed to update order %d: %v", order.ID, err)
		return nil, fmt.Errorf("could not update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, order.ID)
	}
	return order, nil
}

// DeleteOrder removes the order and its line items in one transaction.
// Orders with recorded payments are kept and reported as a conflict.
func (r *sqliteOrderRepository) DeleteOrder(id int64) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			r.log.Errorf("Failed to commit transaction: %v", cErr)
			err = fmt.Errorf("could not commit transaction: %w", cErr)
		}
	}()

	if _, err = tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		r.log.Errorf("Failed to delete items for order %d: %v", id, err)
		return fmt.Errorf("could not delete order items: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM orders WHERE order_id = ?`, id)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			err = fmt.Errorf("%w: order %d has recorded payments", domain.ErrConflict, id)
			return err
		}
		r.log.Errorf("Failed to delete order %d: %v", id, err)
		return fmt.Errorf("could not delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		err = fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
		return err
	}

	r.log.Infof("Order deleted with ID: %d", id)
	return nil
}

func (r *sqliteOrderRepository) ListOrdersByCustomer(customerID int64) ([]domain.Order, error) {
	query := `SELECT order_id, customer_id, order_date, status, total_cost FROM orders
		WHERE customer_id = ?
		ORDER BY order_date`

	return r.listOrders(query, customerID)
}

func (r *sqliteOrderRepository) ListOrdersByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT order_id, customer_id, order_date, status, total_cost FROM orders
		WHERE status = ?
		ORDER BY order_date`

	return r.listOrders(query, string(status))
}

func (r *sqliteOrderRepository) ListOrdersByDateRange(from, to time.Time) ([]domain.Order, error) {
	query := `SELECT order_id, customer_id, order_date, status, total_cost FROM orders
		WHERE order_date BETWEEN ? AND ?
		ORDER BY order_date`

	return r.listOrders(query, formatTime(from), formatTime(to))
}

func (r *sqliteOrderRepository) CountOrdersByCustomer(customerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE customer_id = ?`, customerID).Scan(&count)
	if err != nil {
		r.log.Errorf("Failed to count orders for customer %d: %v", customerID, err)
		return 0, fmt.Errorf("could not count orders: %w", err)
	}
	return count, nil
}

func (r *sqliteOrderRepository) listOrders(query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Failed to list orders: %v", err)
		return nil, fmt.Errorf("could not list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate order rows: %w", err)
	}

	for i := range orders {
		orders[i].Items, err = queryOrderItems(r.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var order domain.Order
	var orderDate string

	if err := scan(&order.ID, &order.CustomerID, &orderDate, &order.Status, &order.TotalCost); err != nil {
		return nil, err
	}

	parsed, err := parseTime(orderDate)
	if err != nil {
		return nil, fmt.Errorf("could not parse order date %q: %w", orderDate, err)
	}
	order.OrderDate = parsed
	return &order, nil
}

func queryOrderItems(db *sql.DB, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT order_item_id, order_id, product_id, quantity, unit_price FROM order_items
		WHERE order_id = ?
		ORDER BY order_item_id`

	rows, err := db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("could not scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate order item rows: %w", err)
	}
	return items, nil
}

type sqliteOrderItemRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteOrderItemRepository(db *sql.DB, logger *logrus.Logger) domain.OrderItemRepository {
	return &sqliteOrderItemRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteOrderItemRepository) CreateOrderItem(item *domain.OrderItem) (*domain.OrderItem, error) {
	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return nil, fmt.Errorf("%w: order %d or product %d does not exist", domain.ErrConflict, item.OrderID, item.ProductID)
		}
		r.log.Errorf("Failed to insert order item for order %d: %v", item.OrderID, err)
		return nil, fmt.Errorf("could not create order item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new order item id: %w", err)
	}
	item.ID = id
	return item, nil
}

func (r *sqliteOrderItemRepository) GetOrderItemByID(id int64) (*domain.OrderItem, error) {
	query := `SELECT order_item_id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_item_id = ?`

	var item domain.OrderItem
	err := r.db.QueryRow(query, id).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order item %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch order item %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch order item: %w", err)
	}
	return &item, nil
}

func (r *sqliteOrderItemRepository) UpdateOrderItem(item *domain.OrderItem) (*domain.OrderItem, error) {
	query := `UPDATE order_items SET quantity = ?, unit_price = ? WHERE order_item_id = ?`

	res, err := r.db.Exec(query, item.Quantity, item.UnitPrice, item.ID)
	if err != nil {
		r.log.Errorf("Failed to update order item %d: %v", item.ID, err)
		return nil, fmt.Errorf("could not update order item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: order item %d", domain.ErrNotFound, item.ID)
	}
	return item, nil
}

func (r *sqliteOrderItemRepository) DeleteOrderItem(id int64) error {
	res, err := r.db.Exec(`DELETE FROM order_items WHERE order_item_id = ?`, id)
	if err != nil {
		r.log.Errorf("Failed to delete order item %d: %v", id, err)
		return fmt.Errorf("could not delete order item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: order item %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *sqliteOrderItemRepository) ListItemsByOrder(orderID int64) ([]domain.OrderItem, error) {
	return queryOrderItems(r.db, orderID)
}

func (r *sqliteOrderItemRepository) CountItemsByProduct(productID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE product_id = ?`, productID).Scan(&count)
	if err != nil {
		r.log.Errorf("Failed to count order items for product %d: %v", productID, err)
		return 0, fmt.Errorf("could not count order items: %w", err)
	}
	return count, nil
}
