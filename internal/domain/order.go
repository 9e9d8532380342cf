package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusDraft      OrderStatus = "draft"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusDraft, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	OrderDate  time.Time   `json:"order_date"`
	Status     OrderStatus `json:"status"`
	TotalCost  float64     `json:"total_cost"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal is the line total at the unit price captured when the item
// was added. Later product price changes do not affect it.
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// AddItem appends a line item snapshotting the given unit price and
// recalculates the total. The returned pointer addresses the stored item
// so the caller can persist the ID assigned by the repository.
func (o *Order) AddItem(productID int64, quantity int, unitPrice float64) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	o.Items = append(o.Items, OrderItem{
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	o.RecalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

// Item returns the stored line item with the given ID, or nil when the
// order holds no such item.
func (o *Order) Item(itemID int64) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *Order) RemoveItem(itemID int64) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.RecalculateTotal()
			return nil
		}
	}
	return fmt.Errorf("%w: order %d has no item %d", ErrNotFound, o.ID, itemID)
}

func (o *Order) UpdateItemQuantity(itemID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	item := o.Item(itemID)
	if item == nil {
		return fmt.Errorf("%w: order %d has no item %d", ErrNotFound, o.ID, itemID)
	}
	item.Quantity = quantity
	o.RecalculateTotal()
	return nil
}

// RecalculateTotal derives the total cost from the line items. Every item
// mutation above calls it, so the stored total never drifts from the items.
func (o *Order) RecalculateTotal() {
	var total float64
	for idx := range o.Items {
		total += o.Items[idx].Subtotal()
	}
	o.TotalCost = total
}

// MarkProcessing moves a draft order into processing, the only state
// Complete accepts.
func (o *Order) MarkProcessing() error {
	if o.Status != StatusDraft {
		return fmt.Errorf("%w: cannot process order in status %q", ErrInvalidStateTransition, o.Status)
	}
	o.Status = StatusProcessing
	return nil
}

func (o *Order) Complete() error {
	if o.Status != StatusProcessing {
		return fmt.Errorf("%w: cannot complete order in status %q", ErrInvalidStateTransition, o.Status)
	}
	o.Status = StatusCompleted
	return nil
}

// Cancel is allowed from draft and processing. Completed and cancelled
// orders stay as they are.
func (o *Order) Cancel() error {
	if o.Status.Terminal() {
		return fmt.Errorf("%w: cannot cancel order in status %q", ErrInvalidStateTransition, o.Status)
	}
	o.Status = StatusCancelled
	return nil
}

type OrderRepository interface {
	CreateOrder(order *Order) (*Order, error)
	GetOrderByID(id int64) (*Order, error)
	UpdateOrder(order *Order) (*Order, error)
	DeleteOrder(id int64) error
	ListOrdersByCustomer(customerID int64) ([]Order, error)
	ListOrdersByStatus(status OrderStatus) ([]Order, error)
	ListOrdersByDateRange(from, to time.Time) ([]Order, error)
	CountOrdersByCustomer(customerID int64) (int64, error)
}

type OrderItemRepository interface {
	CreateOrderItem(item *OrderItem) (*OrderItem, error)
	GetOrderItemByID(id int64) (*OrderItem, error)
	UpdateOrderItem(item *OrderItem) (*OrderItem, error)
	DeleteOrderItem(id int64) error
	ListItemsByOrder(orderID int64) ([]OrderItem, error)
	CountItemsByProduct(productID int64) (int64, error)
}

// OrderUseCase drives the order workflow. The session-bound methods operate
// on the one order the session is building; stock reservations and line
// item changes always move together, with compensating adjustments when a
// step fails partway.
type OrderUseCase interface {
	CreateOrder(sess *Session, customerID int64) (*Order, error)
	AddOrderItem(sess *Session, productID int64, quantity int) (*OrderItem, error)
	RemoveOrderItem(sess *Session, itemID int64) error
	UpdateOrderItemQuantity(sess *Session, itemID int64, quantity int) error
	CurrentOrder(sess *Session) (*Order, error)
	CurrentOrderItems(sess *Session) ([]OrderItem, error)
	CancelOrder(sess *Session) error
	ProcessPayment(sess *Session, amount float64, paymentType PaymentType, referenceNumber string) (*Payment, error)
	GetOrder(id int64) (*Order, error)
	ListOrdersByCustomer(customerID int64) ([]Order, error)
	ListOrdersByStatus(status OrderStatus) ([]Order, error)
	ListOrdersByDateRange(from, to time.Time) ([]Order, error)
}
