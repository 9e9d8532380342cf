package usecase

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

// In-memory repository doubles for the use case tests. They hand out copies
// the way the SQL repositories hand out freshly scanned rows, so in-memory
// mutations that were never persisted stay invisible, and they expose error
// fields to force a failure at a chosen persistence step.

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var _ domain.CustomerRepository = (*fakeCustomerRepo)(nil)

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
	nextID    int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[int64]*domain.Customer)}
}

func (r *fakeCustomerRepo) CreateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	r.nextID++
	customer.ID = r.nextID
	stored := *customer
	r.customers[customer.ID] = &stored
	return customer, nil
}

func (r *fakeCustomerRepo) GetCustomerByID(id int64) (*domain.Customer, error) {
	stored, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakeCustomerRepo) GetCustomerByEmail(email string) (*domain.Customer, error) {
	for _, id := range sortedIDs(r.customers) {
		if r.customers[id].Email == email {
			out := *r.customers[id]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: customer with email %s", domain.ErrNotFound, email)
}

func (r *fakeCustomerRepo) UpdateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	if _, ok := r.customers[customer.ID]; !ok {
		return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, customer.ID)
	}
	stored := *customer
	r.customers[customer.ID] = &stored
	return customer, nil
}

func (r *fakeCustomerRepo) DeleteCustomer(id int64) error {
	if _, ok := r.customers[id]; !ok {
		return fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) ListCustomers() ([]domain.Customer, error) {
	out := []domain.Customer{}
	for _, id := range sortedIDs(r.customers) {
		out = append(out, *r.customers[id])
	}
	return out, nil
}

func (r *fakeCustomerRepo) SearchCustomers(query string) ([]domain.Customer, error) {
	out := []domain.Customer{}
	for _, id := range sortedIDs(r.customers) {
		c := r.customers[id]
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(c.Email), strings.ToLower(query)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ domain.ProductRepository = (*fakeProductRepo)(nil)

type fakeProductRepo struct {
	products  map[int64]*domain.Product
	nextID    int64
	updateErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*domain.Product)}
}

func (r *fakeProductRepo) CreateProduct(product *domain.Product) (*domain.Product, error) {
	r.nextID++
	product.ID = r.nextID
	stored := *product
	r.products[product.ID] = &stored
	return product, nil
}

func (r *fakeProductRepo) GetProductByID(id int64) (*domain.Product, error) {
	stored, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakeProductRepo) GetProductBySKU(sku string) (*domain.Product, error) {
	for _, id := range sortedIDs(r.products) {
		if r.products[id].SKU == sku {
			out := *r.products[id]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: product with SKU %s", domain.ErrNotFound, sku)
}

func (r *fakeProductRepo) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.products[product.ID]; !ok {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, product.ID)
	}
	stored := *product
	r.products[product.ID] = &stored
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(id int64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListProducts() ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range sortedIDs(r.products) {
		out = append(out, *r.products[id])
	}
	return out, nil
}

func (r *fakeProductRepo) SearchProducts(query string) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range sortedIDs(r.products) {
		p := r.products[id]
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(p.SKU), strings.ToLower(query)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStockProducts(threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range sortedIDs(r.products) {
		if r.products[id].StockQuantity <= threshold {
			out = append(out, *r.products[id])
		}
	}
	return out, nil
}

// stock reads the persisted stock level directly, for assertions.
func (r *fakeProductRepo) stock(id int64) int {
	return r.products[id].StockQuantity
}

var _ domain.OrderItemRepository = (*fakeOrderItemRepo)(nil)

type fakeOrderItemRepo struct {
	items     map[int64]*domain.OrderItem
	nextID    int64
	createErr error
	updateErr error
	deleteErr error
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{items: make(map[int64]*domain.OrderItem)}
}

func (r *fakeOrderItemRepo) CreateOrderItem(item *domain.OrderItem) (*domain.OrderItem, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	item.ID = r.nextID
	stored := *item
	r.items[item.ID] = &stored
	return item, nil
}

func (r *fakeOrderItemRepo) GetOrderItemByID(id int64) (*domain.OrderItem, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: order item %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakeOrderItemRepo) UpdateOrderItem(item *domain.OrderItem) (*domain.OrderItem, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.items[item.ID]; !ok {
		return nil, fmt.Errorf("%w: order item %d", domain.ErrNotFound, item.ID)
	}
	stored := *item
	r.items[item.ID] = &stored
	return item, nil
}

func (r *fakeOrderItemRepo) DeleteOrderItem(id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: order item %d", domain.ErrNotFound, id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeOrderItemRepo) ListItemsByOrder(orderID int64) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	for _, id := range sortedIDs(r.items) {
		if r.items[id].OrderID == orderID {
			out = append(out, *r.items[id])
		}
	}
	return out, nil
}

func (r *fakeOrderItemRepo) CountItemsByProduct(productID int64) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.ProductID == productID {
			count++
		}
	}
	return count, nil
}

var _ domain.OrderRepository = (*fakeOrderRepo)(nil)

// fakeOrderRepo stores only the order row; items live in the item repo and
// are joined in on every read, mirroring the SQL repository split.
type fakeOrderRepo struct {
	orders    map[int64]*domain.Order
	items     *fakeOrderItemRepo
	nextID    int64
	createErr error
	updateErr error
}

func newFakeOrderRepo(items *fakeOrderItemRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order), items: items}
}

func (r *fakeOrderRepo) CreateOrder(order *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	order.ID = r.nextID
	row := *order
	row.Items = nil
	r.orders[order.ID] = &row
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if _, err := r.items.CreateOrderItem(&order.Items[i]); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (r *fakeOrderRepo) GetOrderByID(id int64) (*domain.Order, error) {
	stored, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	out := *stored
	items, err := r.items.ListItemsByOrder(id)
	if err != nil {
		return nil, err
	}
	out.Items = items
	return &out, nil
}

func (r *fakeOrderRepo) UpdateOrder(order *domain.Order) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.orders[order.ID]; !ok {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, order.ID)
	}
	row := *order
	row.Items = nil
	r.orders[order.ID] = &row
	return order, nil
}

func (r *fakeOrderRepo) DeleteOrder(id int64) error {
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	delete(r.orders, id)
	for itemID, item := range r.items.items {
		if item.OrderID == id {
			delete(r.items.items, itemID)
		}
	}
	return nil
}

func (r *fakeOrderRepo) ListOrdersByCustomer(customerID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, id := range sortedIDs(r.orders) {
		if r.orders[id].CustomerID == customerID {
			order, err := r.GetOrderByID(id)
			if err != nil {
				return nil, err
			}
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListOrdersByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, id := range sortedIDs(r.orders) {
		if r.orders[id].Status == status {
			order, err := r.GetOrderByID(id)
			if err != nil {
				return nil, err
			}
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListOrdersByDateRange(from, to time.Time) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, id := range sortedIDs(r.orders) {
		date := r.orders[id].OrderDate
		if !date.Before(from) && !date.After(to) {
			order, err := r.GetOrderByID(id)
			if err != nil {
				return nil, err
			}
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountOrdersByCustomer(customerID int64) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

var _ domain.PaymentRepository = (*fakePaymentRepo)(nil)

type fakePaymentRepo struct {
	payments  map[int64]*domain.Payment
	nextID    int64
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64]*domain.Payment)}
}

func (r *fakePaymentRepo) CreatePayment(payment *domain.Payment) (*domain.Payment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	payment.ID = r.nextID
	stored := *payment
	r.payments[payment.ID] = &stored
	return payment, nil
}

func (r *fakePaymentRepo) GetPaymentByID(id int64) (*domain.Payment, error) {
	stored, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakePaymentRepo) UpdatePayment(payment *domain.Payment) (*domain.Payment, error) {
	if _, ok := r.payments[payment.ID]; !ok {
		return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, payment.ID)
	}
	stored := *payment
	r.payments[payment.ID] = &stored
	return payment, nil
}

func (r *fakePaymentRepo) ListPaymentsByOrder(orderID int64) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, id := range sortedIDs(r.payments) {
		if r.payments[id].OrderID == orderID {
			out = append(out, *r.payments[id])
		}
	}
	return out, nil
}

var _ domain.UserRepository = (*fakeUserRepo)(nil)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, fmt.Errorf("%w: username %s is already taken", domain.ErrConflict, user.Username)
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*domain.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*domain.User, error) {
	for _, id := range sortedIDs(r.users) {
		if r.users[id].Username == username {
			out := *r.users[id]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
}

func (r *fakeUserRepo) ListUsers() ([]domain.User, error) {
	out := []domain.User{}
	for _, id := range sortedIDs(r.users) {
		out = append(out, *r.users[id])
	}
	return out, nil
}

var _ domain.RoleRepository = (*fakeRoleRepo)(nil)

type fakeRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[int64]*domain.Role)}
}

func (r *fakeRoleRepo) CreateRole(role *domain.Role) (*domain.Role, error) {
	r.nextID++
	role.ID = r.nextID
	stored := *role
	r.roles[role.ID] = &stored
	return role, nil
}

func (r *fakeRoleRepo) GetRoleByID(id int64) (*domain.Role, error) {
	stored, ok := r.roles[id]
	if !ok {
		return nil, fmt.Errorf("%w: role %d", domain.ErrNotFound, id)
	}
	out := *stored
	return &out, nil
}

func (r *fakeRoleRepo) GetRoleByName(name string) (*domain.Role, error) {
	for _, id := range sortedIDs(r.roles) {
		if r.roles[id].Name == name {
			out := *r.roles[id]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: role %s", domain.ErrNotFound, name)
}

func (r *fakeRoleRepo) ListRoles() ([]domain.Role, error) {
	out := []domain.Role{}
	for _, id := range sortedIDs(r.roles) {
		out = append(out, *r.roles[id])
	}
	return out, nil
}
