package domain

import "time"

// SalesReportRow is one completed order in a sales report.
type SalesReportRow struct {
	OrderID     int64     `json:"order_id"`
	Date        time.Time `json:"date"`
	Customer    string    `json:"customer"`
	Items       int       `json:"items"`
	Total       float64   `json:"total"`
	PaymentType string    `json:"payment_type"`
}

// StockReportRow is one product in an inventory report.
type StockReportRow struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

type ReportUseCase interface {
	SalesReport(from, to time.Time) ([]SalesReportRow, error)
	DailySalesReport(day time.Time) ([]SalesReportRow, error)
	WeeklySalesReport(day time.Time) ([]SalesReportRow, error)
	MonthlySalesReport(day time.Time) ([]SalesReportRow, error)
	ProductStockReport() ([]StockReportRow, error)
	LowStockReport(threshold int) ([]StockReportRow, error)
	ExportSalesReportCSV(rows []SalesReportRow, path string) error
	ExportStockReportCSV(rows []StockReportRow, path string) error
}
