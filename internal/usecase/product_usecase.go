package usecase

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

// DefaultLowStockThreshold is used when neither the configuration nor the
// caller supplies one.
const DefaultLowStockThreshold = 10

var _ domain.ProductUseCase = (*productUseCase)(nil)

type productUseCase struct {
	productRepo  domain.ProductRepository
	itemRepo     domain.OrderItemRepository
	lowStockMark int
	log          *logrus.Logger
}

func NewProductUseCase(productRepo domain.ProductRepository, itemRepo domain.OrderItemRepository, lowStockThreshold int, logger *logrus.Logger) domain.ProductUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &productUseCase{
		productRepo:  productRepo,
		itemRepo:     itemRepo,
		lowStockMark: lowStockThreshold,
		log:          logger,
	}
}

func (uc *productUseCase) AddProduct(product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	existing, err := uc.productRepo.GetProductBySKU(product.SKU)
	if err == nil {
		return nil, fmt.Errorf("%w: a product with SKU %s already exists (product %d)",
			domain.ErrConflict, product.SKU, existing.ID)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	created, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Product %d (%s) added with stock %d", created.ID, created.SKU, created.StockQuantity)
	return created, nil
}

func (uc *productUseCase) GetProduct(id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}
	return uc.productRepo.GetProductByID(id)
}

func (uc *productUseCase) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if product.ID <= 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	existing, err := uc.productRepo.GetProductByID(product.ID)
	if err != nil {
		return nil, err
	}

	if product.SKU != existing.SKU {
		other, err := uc.productRepo.GetProductBySKU(product.SKU)
		if err == nil && other.ID != product.ID {
			return nil, fmt.Errorf("%w: SKU %s is already used by product %d",
				domain.ErrConflict, product.SKU, other.ID)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	updated, err := uc.productRepo.UpdateProduct(product)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Product %d updated", updated.ID)
	return updated, nil
}

// DeleteProduct refuses to remove a product any order item references.
// Historical line items keep pointing at a real product row, and stock
// returns for open orders always have somewhere to go.
func (uc *productUseCase) DeleteProduct(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	if _, err := uc.productRepo.GetProductByID(id); err != nil {
		return err
	}

	count, err := uc.itemRepo.CountItemsByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: product %d is referenced by %d order items",
			domain.ErrConflict, id, count)
	}

	if err := uc.productRepo.DeleteProduct(id); err != nil {
		return err
	}

	uc.log.Infof("Use Case: Product %d deleted", id)
	return nil
}

func (uc *productUseCase) ListProducts() ([]domain.Product, error) {
	return uc.productRepo.ListProducts()
}

func (uc *productUseCase) SearchProducts(query string) ([]domain.Product, error) {
	return uc.productRepo.SearchProducts(query)
}

func (uc *productUseCase) LowStockProducts(threshold int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = uc.lowStockMark
	}
	return uc.productRepo.ListLowStockProducts(threshold)
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if product.SKU == "" {
		return fmt.Errorf("%w: SKU is required", domain.ErrInvalidInput)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if product.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}
