package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

var _ domain.ReportUseCase = (*reportUseCase)(nil)

type reportUseCase struct {
	orderRepo    domain.OrderRepository
	customerRepo domain.CustomerRepository
	paymentRepo  domain.PaymentRepository
	productRepo  domain.ProductRepository
	lowStockMark int
	log          *logrus.Logger
}

func NewReportUseCase(
	orderRepo domain.OrderRepository,
	customerRepo domain.CustomerRepository,
	paymentRepo domain.PaymentRepository,
	productRepo domain.ProductRepository,
	lowStockThreshold int,
	logger *logrus.Logger,
) domain.ReportUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &reportUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		lowStockMark: lowStockThreshold,
		log:          logger,
	}
}

// SalesReport builds one row per completed order in the range. Orders in
// any other status are skipped, not reported as an error.
func (uc *reportUseCase) SalesReport(from, to time.Time) ([]domain.SalesReportRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end of date range precedes start", domain.ErrInvalidInput)
	}

	orders, err := uc.orderRepo.ListOrdersByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	rows := []domain.SalesReportRow{}
	for i := range orders {
		order := &orders[i]
		if order.Status != domain.StatusCompleted {
			continue
		}

		customerName := "Unknown"
		customer, err := uc.customerRepo.GetCustomerByID(order.CustomerID)
		if err == nil {
			customerName = customer.Name
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		paymentType := "Unknown"
		payments, err := uc.paymentRepo.ListPaymentsByOrder(order.ID)
		if err != nil {
			return nil, err
		}
		if len(payments) > 0 {
			paymentType = string(payments[0].Type)
		}

		rows = append(rows, domain.SalesReportRow{
			OrderID:     order.ID,
			Date:        order.OrderDate,
			Customer:    customerName,
			Items:       len(order.Items),
			Total:       order.TotalCost,
			PaymentType: paymentType,
		})
	}

	uc.log.Infof("Use Case: Sales report generated with %d rows (%s to %s)",
		len(rows), from.Format(time.RFC3339), to.Format(time.RFC3339))
	return rows, nil
}

func (uc *reportUseCase) DailySalesReport(day time.Time) ([]domain.SalesReportRow, error) {
	from := startOfDay(day)
	return uc.SalesReport(from, endOfDay(from))
}

// WeeklySalesReport covers the Monday through Sunday week containing day.
func (uc *reportUseCase) WeeklySalesReport(day time.Time) ([]domain.SalesReportRow, error) {
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	from := startOfDay(day.AddDate(0, 0, -daysSinceMonday))
	return uc.SalesReport(from, endOfDay(from.AddDate(0, 0, 6)))
}

func (uc *reportUseCase) MonthlySalesReport(day time.Time) ([]domain.SalesReportRow, error) {
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return uc.SalesReport(from, to)
}

func (uc *reportUseCase) ProductStockReport() ([]domain.StockReportRow, error) {
	products, err := uc.productRepo.ListProducts()
	if err != nil {
		return nil, err
	}
	return stockRows(products), nil
}

func (uc *reportUseCase) LowStockReport(threshold int) ([]domain.StockReportRow, error) {
	if threshold <= 0 {
		threshold = uc.lowStockMark
	}
	products, err := uc.productRepo.ListLowStockProducts(threshold)
	if err != nil {
		return nil, err
	}
	return stockRows(products), nil
}

func (uc *reportUseCase) ExportSalesReportCSV(rows []domain.SalesReportRow, path string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no data to export", domain.ErrInvalidInput)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatInt(row.OrderID, 10),
			row.Date.Format("2006-01-02 15:04:05"),
			row.Customer,
			strconv.Itoa(row.Items),
			strconv.FormatFloat(row.Total, 'f', 2, 64),
			row.PaymentType,
		})
	}

	header := []string{"order_id", "date", "customer", "items", "total", "payment_type"}
	if err := uc.writeCSV(path, header, records); err != nil {
		return err
	}

	uc.log.Infof("Use Case: Sales report exported to %s (%d rows)", path, len(rows))
	return nil
}

func (uc *reportUseCase) ExportStockReportCSV(rows []domain.StockReportRow, path string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no data to export", domain.ErrInvalidInput)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatInt(row.ProductID, 10),
			row.Name,
			row.SKU,
			strconv.FormatFloat(row.Price, 'f', 2, 64),
			strconv.Itoa(row.StockQuantity),
		})
	}

	header := []string{"product_id", "name", "sku", "price", "stock_quantity"}
	if err := uc.writeCSV(path, header, records); err != nil {
		return err
	}

	uc.log.Infof("Use Case: Stock report exported to %s (%d rows)", path, len(rows))
	return nil
}

func (uc *reportUseCase) writeCSV(path string, header []string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("could not write CSV rows: %w", err)
	}
	return writer.Error()
}

func stockRows(products []domain.Product) []domain.StockReportRow {
	rows := make([]domain.StockReportRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, domain.StockReportRow{
			ProductID:     product.ID,
			Name:          product.Name,
			SKU:           product.SKU,
			Price:         product.Price,
			StockQuantity: product.StockQuantity,
		})
	}
	return rows
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
