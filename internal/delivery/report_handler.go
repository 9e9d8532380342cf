package delivery

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

type ReportHandler struct {
	useCase domain.ReportUseCase
	log     *logrus.Logger
}

func NewReportHandler(uc domain.ReportUseCase, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	reports := router.Group("/reports")
	{
		reports.GET("/sales", h.SalesReport)
		reports.GET("/stock", h.StockReport)
		reports.GET("/low-stock", h.LowStockReport)
	}
}

// RegisterAdminRoutes mounts the export routes, which write files on the
// server host and are restricted to admins.
func (h *ReportHandler) RegisterAdminRoutes(router gin.IRouter) {
	reports := router.Group("/reports")
	{
		reports.POST("/sales/export", h.ExportSalesReport)
		reports.POST("/stock/export", h.ExportStockReport)
	}
}

func (h *ReportHandler) SalesReport(c *gin.Context) {
	rows, err := h.salesRowsFromQuery(c)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to generate sales report: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Sales report generated successfully", rows)
}

// ExportSalesReport takes the same range query parameters as the report
// itself plus the destination path in the body.
func (h *ReportHandler) ExportSalesReport(c *gin.Context) {
	var requestBody struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if requestBody.Path == "" {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: path is required")
		return
	}

	rows, err := h.salesRowsFromQuery(c)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to generate sales report: "+err.Error())
		return
	}

	if err := h.useCase.ExportSalesReportCSV(rows, requestBody.Path); err != nil {
		h.log.Errorf("Failed to export sales report to %s: %v", requestBody.Path, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to export sales report: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Sales report exported successfully", gin.H{"path": requestBody.Path, "rows": len(rows)})
}

func (h *ReportHandler) StockReport(c *gin.Context) {
	rows, err := h.useCase.ProductStockReport()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to generate stock report: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Stock report generated successfully", rows)
}

func (h *ReportHandler) ExportStockReport(c *gin.Context) {
	var requestBody struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if requestBody.Path == "" {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: path is required")
		return
	}

	rows, err := h.useCase.ProductStockReport()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to generate stock report: "+err.Error())
		return
	}

	if err := h.useCase.ExportStockReportCSV(rows, requestBody.Path); err != nil {
		h.log.Errorf("Failed to export stock report to %s: %v", requestBody.Path, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to export stock report: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Stock report exported successfully", gin.H{"path": requestBody.Path, "rows": len(rows)})
}

func (h *ReportHandler) LowStockReport(c *gin.Context) {
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid threshold parameter")
			return
		}
		threshold = parsed
	}

	rows, err := h.useCase.LowStockReport(threshold)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to generate low stock report: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Low stock report generated successfully", rows)
}

// salesRowsFromQuery builds the sales rows for either a named period
// (daily, weekly, monthly, anchored on an optional date) or an explicit
// from/to range.
func (h *ReportHandler) salesRowsFromQuery(c *gin.Context) ([]domain.SalesReportRow, error) {
	if period := c.Query("period"); period != "" {
		day := time.Now().UTC()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", domain.ErrInvalidInput, raw)
			}
			day = parsed
		}

		switch period {
		case "daily":
			return h.useCase.DailySalesReport(day)
		case "weekly":
			return h.useCase.WeeklySalesReport(day)
		case "monthly":
			return h.useCase.MonthlySalesReport(day)
		default:
			return nil, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, period)
		}
	}

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" || toRaw == "" {
		return nil, fmt.Errorf("%w: provide period or from/to query parameters", domain.ErrInvalidInput)
	}

	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from %q, expected YYYY-MM-DD", domain.ErrInvalidInput, fromRaw)
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to %q, expected YYYY-MM-DD", domain.ErrInvalidInput, toRaw)
	}

	return h.useCase.SalesReport(from, to.AddDate(0, 0, 1).Add(-time.Second))
}
