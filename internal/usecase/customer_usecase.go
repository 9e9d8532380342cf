package usecase

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

var _ domain.CustomerUseCase = (*customerUseCase)(nil)

type customerUseCase struct {
	customerRepo domain.CustomerRepository
	orderRepo    domain.OrderRepository
	log          *logrus.Logger
}

func NewCustomerUseCase(customerRepo domain.CustomerRepository, orderRepo domain.OrderRepository, logger *logrus.Logger) domain.CustomerUseCase {
	return &customerUseCase{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		log:          logger,
	}
}

func (uc *customerUseCase) AddCustomer(customer *domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if customer.Email != "" {
		existing, err := uc.customerRepo.GetCustomerByEmail(customer.Email)
		if err == nil {
			return nil, fmt.Errorf("%w: a customer with email %s already exists (customer %d)",
				domain.ErrConflict, customer.Email, existing.ID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	created, err := uc.customerRepo.CreateCustomer(customer)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Customer %d (%s) added", created.ID, created.Name)
	return created, nil
}

func (uc *customerUseCase) GetCustomer(id int64) (*domain.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid customer id", domain.ErrInvalidInput)
	}
	return uc.customerRepo.GetCustomerByID(id)
}

func (uc *customerUseCase) UpdateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	if customer.ID <= 0 {
		return nil, fmt.Errorf("%w: invalid customer id", domain.ErrInvalidInput)
	}
	if customer.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	existing, err := uc.customerRepo.GetCustomerByID(customer.ID)
	if err != nil {
		return nil, err
	}

	if customer.Email != "" && customer.Email != existing.Email {
		other, err := uc.customerRepo.GetCustomerByEmail(customer.Email)
		if err == nil && other.ID != customer.ID {
			return nil, fmt.Errorf("%w: email %s is already used by customer %d",
				domain.ErrConflict, customer.Email, other.ID)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	updated, err := uc.customerRepo.UpdateCustomer(customer)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Customer %d updated", updated.ID)
	return updated, nil
}

// DeleteCustomer refuses to remove a customer that any order references,
// so order history stays resolvable.
func (uc *customerUseCase) DeleteCustomer(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid customer id", domain.ErrInvalidInput)
	}

	if _, err := uc.customerRepo.GetCustomerByID(id); err != nil {
		return err
	}

	count, err := uc.orderRepo.CountOrdersByCustomer(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete customer %d with %d existing orders",
			domain.ErrConflict, id, count)
	}

	if err := uc.customerRepo.DeleteCustomer(id); err != nil {
		return err
	}

	uc.log.Infof("Use Case: Customer %d deleted", id)
	return nil
}

func (uc *customerUseCase) ListCustomers() ([]domain.Customer, error) {
	return uc.customerRepo.ListCustomers()
}

func (uc *customerUseCase) SearchCustomers(query string) ([]domain.Customer, error) {
	return uc.customerRepo.SearchCustomers(query)
}
