package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	mu           sync.Mutex
	orderRepo    domain.OrderRepository
	itemRepo     domain.OrderItemRepository
	productRepo  domain.ProductRepository
	customerRepo domain.CustomerRepository
	paymentRepo  domain.PaymentRepository
	log          *logrus.Logger
}

func NewOrderUseCase(
	orderRepo domain.OrderRepository,
	itemRepo domain.OrderItemRepository,
	productRepo domain.ProductRepository,
	customerRepo domain.CustomerRepository,
	paymentRepo domain.PaymentRepository,
	logger *logrus.Logger,
) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		log:          logger,
	}
}

func (uc *orderUseCase) CreateOrder(sess *domain.Session, customerID int64) (*domain.Order, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if sess.HasActiveOrder() {
		uc.log.Warnf("Use Case: User %d already has order %d in progress", sess.UserID, sess.CurrentOrderID)
		return nil, fmt.Errorf("%w: order %d is still in progress, complete or cancel it first",
			domain.ErrInvalidStateTransition, sess.CurrentOrderID)
	}

	customer, err := uc.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		OrderDate:  nowUTC(),
		Status:     domain.StatusDraft,
		Items:      []domain.OrderItem{},
	}
	if _, err := uc.orderRepo.CreateOrder(order); err != nil {
		return nil, err
	}

	sess.CurrentOrderID = order.ID
	uc.log.Infof("Use Case: Order %d opened for customer %d by user %d", order.ID, customer.ID, sess.UserID)
	return order, nil
}

func (uc *orderUseCase) AddOrderItem(sess *domain.Session, productID int64, quantity int) (*domain.OrderItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.currentOrder(sess)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Reserving %d x product %d (stock: %d) for order %d",
		quantity, product.ID, product.StockQuantity, order.ID)
	if err := product.AdjustStock(-quantity); err != nil {
		uc.log.Warnf("Use Case: Insufficient stock for product %d (requested: %d, available: %d)",
			product.ID, quantity, product.StockQuantity)
		return nil, err
	}
	if _, err := uc.productRepo.UpdateProduct(product); err != nil {
		return nil, fmt.Errorf("could not reserve stock: %w", err)
	}

	item, err := order.AddItem(product.ID, quantity, product.Price)
	if err != nil {
		uc.rollbackStock(product.ID, quantity)
		return nil, err
	}

	if _, err := uc.itemRepo.CreateOrderItem(item); err != nil {
		uc.log.Errorf("Use Case: Failed to persist item for order %d: %v. Rolling back stock reservation...", order.ID, err)
		uc.rollbackStock(product.ID, quantity)
		return nil, err
	}

	if _, err := uc.orderRepo.UpdateOrder(order); err != nil {
		uc.log.Errorf("Use Case: Failed to persist total for order %d: %v. Rolling back item and stock...", order.ID, err)
		if delErr := uc.itemRepo.DeleteOrderItem(item.ID); delErr != nil {
			uc.log.Errorf("Use Case: CRITICAL! Failed to remove item %d during rollback: %v. Manual intervention required!",
				item.ID, delErr)
		}
		uc.rollbackStock(product.ID, quantity)
		return nil, err
	}

	uc.log.Infof("Use Case: Added item %d (product %d x%d) to order %d, total now %.2f",
		item.ID, product.ID, quantity, order.ID, order.TotalCost)
	return item, nil
}

func (uc *orderUseCase) RemoveOrderItem(sess *domain.Session, itemID int64) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.currentOrder(sess)
	if err != nil {
		return err
	}

	item := order.Item(itemID)
	if item == nil {
		return fmt.Errorf("%w: order %d has no item %d", domain.ErrNotFound, order.ID, itemID)
	}
	productID, quantity := item.ProductID, item.Quantity

	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		return fmt.Errorf("could not load product for stock return: %w", err)
	}
	if err := product.AdjustStock(quantity); err != nil {
		return err
	}
	if _, err := uc.productRepo.UpdateProduct(product); err != nil {
		return fmt.Errorf("could not return stock: %w", err)
	}

	if err := order.RemoveItem(itemID); err != nil {
		uc.rollbackStock(productID, -quantity)
		return err
	}

	if err := uc.itemRepo.DeleteOrderItem(itemID); err != nil {
		uc.log.Errorf("Use Case: Failed to delete item %d for order %d: %v. Rolling back stock return...",
			itemID, order.ID, err)
		uc.rollbackStock(productID, -quantity)
		return err
	}

	if _, err := uc.orderRepo.UpdateOrder(order); err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Item %d removed but total for order %d not persisted: %v. Manual intervention required!",
			itemID, order.ID, err)
		return err
	}

	uc.log.Infof("Use Case: Removed item %d from order %d, returned %d units to product %d",
		itemID, order.ID, quantity, productID)
	return nil
}

func (uc *orderUseCase) UpdateOrderItemQuantity(sess *domain.Session, itemID int64, quantity int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.currentOrder(sess)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	item := order.Item(itemID)
	if item == nil {
		return fmt.Errorf("%w: order %d has no item %d", domain.ErrNotFound, order.ID, itemID)
	}

	delta := quantity - item.Quantity
	if delta == 0 {
		return nil
	}

	product, err := uc.productRepo.GetProductByID(item.ProductID)
	if err != nil {
		return err
	}

	if err := product.AdjustStock(-delta); err != nil {
		uc.log.Warnf("Use Case: Insufficient stock to raise item %d to %d (product %d has %d)",
			itemID, quantity, product.ID, product.StockQuantity)
		return err
	}
	if _, err := uc.productRepo.UpdateProduct(product); err != nil {
		return fmt.Errorf("could not adjust stock: %w", err)
	}

	previous := item.Quantity
	if err := order.UpdateItemQuantity(itemID, quantity); err != nil {
		uc.rollbackStock(product.ID, delta)
		return err
	}

	if _, err := uc.itemRepo.UpdateOrderItem(item); err != nil {
		uc.log.Errorf("Use Case: Failed to persist quantity for item %d: %v. Rolling back stock adjustment...",
			itemID, err)
		uc.rollbackStock(product.ID, delta)
		return err
	}

	if _, err := uc.orderRepo.UpdateOrder(order); err != nil {
		uc.log.Errorf("Use Case: Failed to persist total for order %d: %v. Rolling back item and stock...",
			order.ID, err)
		item.Quantity = previous
		if _, revErr := uc.itemRepo.UpdateOrderItem(item); revErr != nil {
			uc.log.Errorf("Use Case: CRITICAL! Failed to restore quantity for item %d: %v. Manual intervention required!",
				itemID, revErr)
		}
		uc.rollbackStock(product.ID, delta)
		return err
	}

	uc.log.Infof("Use Case: Item %d quantity set to %d on order %d, total now %.2f",
		itemID, quantity, order.ID, order.TotalCost)
	return nil
}

func (uc *orderUseCase) CurrentOrder(sess *domain.Session) (*domain.Order, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !sess.HasActiveOrder() {
		return nil, fmt.Errorf("%w: no active order", domain.ErrNotFound)
	}
	return uc.orderRepo.GetOrderByID(sess.CurrentOrderID)
}

// CurrentOrderItems returns an empty slice, not an error, when the session
// has no order in progress.
func (uc *orderUseCase) CurrentOrderItems(sess *domain.Session) ([]domain.OrderItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !sess.HasActiveOrder() {
		return []domain.OrderItem{}, nil
	}
	order, err := uc.orderRepo.GetOrderByID(sess.CurrentOrderID)
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

func (uc *orderUseCase) CancelOrder(sess *domain.Session) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.currentOrder(sess)
	if err != nil {
		return err
	}

	if err := order.Cancel(); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		product, err := uc.productRepo.GetProductByID(item.ProductID)
		if err != nil {
			uc.log.Errorf("Use Case: CRITICAL! Could not load product %d while cancelling order %d: %v. Manual stock correction required!",
				item.ProductID, order.ID, err)
			continue
		}
		if err := product.AdjustStock(item.Quantity); err != nil {
			uc.log.Errorf("Use Case: CRITICAL! Could not return %d units to product %d while cancelling order %d: %v. Manual stock correction required!",
				item.Quantity, item.ProductID, order.ID, err)
			continue
		}
		if _, err := uc.productRepo.UpdateProduct(product); err != nil {
			uc.log.Errorf("Use Case: CRITICAL! Could not return %d units to product %d while cancelling order %d: %v. Manual stock correction required!",
				item.Quantity, item.ProductID, order.ID, err)
			continue
		}
		uc.log.Infof("Use Case: Returned %d units to product %d from cancelled order %d",
			item.Quantity, item.ProductID, order.ID)
	}

	if _, err := uc.orderRepo.UpdateOrder(order); err != nil {
		sess.CurrentOrderID = 0
		uc.log.Errorf("Use Case: CRITICAL! Stock returned but order %d not marked cancelled: %v. Manual intervention required!",
			order.ID, err)
		return err
	}

	sess.CurrentOrderID = 0
	uc.log.Infof("Use Case: Order %d cancelled by user %d", order.ID, sess.UserID)
	return nil
}

func (uc *orderUseCase) ProcessPayment(sess *domain.Session, amount float64, paymentType domain.PaymentType, referenceNumber string) (*domain.Payment, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.currentOrder(sess)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", domain.ErrInvalidInput)
	}
	if amount < order.TotalCost {
		return nil, fmt.Errorf("%w: payment amount %.2f is less than the order total %.2f",
			domain.ErrInvalidInput, amount, order.TotalCost)
	}

	payment := &domain.Payment{
		OrderID:         order.ID,
		PaymentDate:     nowUTC(),
		Amount:          amount,
		Type:            paymentType,
		Status:          domain.PaymentCompleted,
		ReferenceNumber: referenceNumber,
	}
	if problems := payment.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	if err := order.MarkProcessing(); err != nil {
		return nil, err
	}

	if _, err := uc.paymentRepo.CreatePayment(payment); err != nil {
		order.Status = domain.StatusDraft
		return nil, err
	}

	if err := order.Complete(); err != nil {
		return nil, err
	}
	if _, err := uc.orderRepo.UpdateOrder(order); err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Payment %d recorded but order %d not marked completed: %v. Manual intervention required!",
			payment.ID, order.ID, err)
		return nil, err
	}

	sess.CurrentOrderID = 0
	uc.log.Infof("Use Case: Payment %d (%s, %.2f) completed order %d",
		payment.ID, payment.Type, payment.Amount, order.ID)
	return payment, nil
}

func (uc *orderUseCase) GetOrder(id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order id", domain.ErrInvalidInput)
	}
	return uc.orderRepo.GetOrderByID(id)
}

func (uc *orderUseCase) ListOrdersByCustomer(customerID int64) ([]domain.Order, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: invalid customer id", domain.ErrInvalidInput)
	}
	return uc.orderRepo.ListOrdersByCustomer(customerID)
}

func (uc *orderUseCase) ListOrdersByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	return uc.orderRepo.ListOrdersByStatus(status)
}

func (uc *orderUseCase) ListOrdersByDateRange(from, to time.Time) ([]domain.Order, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end of date range precedes start", domain.ErrInvalidInput)
	}
	return uc.orderRepo.ListOrdersByDateRange(from, to)
}

// currentOrder loads the session's order under construction with its items.
// Callers hold uc.mu.
func (uc *orderUseCase) currentOrder(sess *domain.Session) (*domain.Order, error) {
	if !sess.HasActiveOrder() {
		return nil, fmt.Errorf("%w: no active order", domain.ErrInvalidStateTransition)
	}
	return uc.orderRepo.GetOrderByID(sess.CurrentOrderID)
}

// rollbackStock is the compensating half of a failed item mutation: it
// re-applies delta to the product's persisted stock level. Failures are
// logged only; the caller reports the error that triggered the rollback.
func (uc *orderUseCase) rollbackStock(productID int64, delta int) {
	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Failed to load product %d during stock rollback: %v. Manual intervention required!",
			productID, err)
		return
	}
	if err := product.AdjustStock(delta); err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Failed to adjust stock for product %d during rollback: %v. Manual intervention required!",
			productID, err)
		return
	}
	if _, err := uc.productRepo.UpdateProduct(product); err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Failed to persist stock rollback for product %d: %v. Manual intervention required!",
			productID, err)
	}
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
