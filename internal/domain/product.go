package domain

import "fmt"

type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// AdjustStock applies delta to the stock level. A negative delta consumes
// stock, a positive one returns it. The level never drops below zero: an
// adjustment that would is rejected with ErrInsufficientStock and the
// product is left untouched. Persisting the new level is the caller's job.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return fmt.Errorf("%w: product %d has %d in stock, requested %d",
			ErrInsufficientStock, p.ID, p.StockQuantity, -delta)
	}
	p.StockQuantity = next
	return nil
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int64) (*Product, error)
	GetProductBySKU(sku string) (*Product, error)
	UpdateProduct(product *Product) (*Product, error)
	DeleteProduct(id int64) error
	ListProducts() ([]Product, error)
	SearchProducts(query string) ([]Product, error)
	ListLowStockProducts(threshold int) ([]Product, error)
}

type ProductUseCase interface {
	AddProduct(product *Product) (*Product, error)
	GetProduct(id int64) (*Product, error)
	UpdateProduct(product *Product) (*Product, error)
	DeleteProduct(id int64) error
	ListProducts() ([]Product, error)
	SearchProducts(query string) ([]Product, error)
	LowStockProducts(threshold int) ([]Product, error)
}
