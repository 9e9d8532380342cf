package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

type ProductHandler struct {
	useCase domain.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc domain.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/low-stock", h.LowStockProducts)
		products.GET("/:id", h.GetProductByID)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

type productRequest struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var requestBody productRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product := domain.Product{
		Name:          requestBody.Name,
		SKU:           requestBody.SKU,
		Description:   requestBody.Description,
		Price:         requestBody.Price,
		StockQuantity: requestBody.StockQuantity,
	}
	created, err := h.useCase.AddProduct(&product)
	if err != nil {
		h.log.Errorf("Failed to create product: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.useCase.GetProduct(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product fetched successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var requestBody productRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product := domain.Product{
		ID:            id,
		Name:          requestBody.Name,
		SKU:           requestBody.SKU,
		Description:   requestBody.Description,
		Price:         requestBody.Price,
		StockQuantity: requestBody.StockQuantity,
	}
	updated, err := h.useCase.UpdateProduct(&product)
	if err != nil {
		h.log.Errorf("Failed to update product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(id); err != nil {
		h.log.Errorf("Failed to delete product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products fetched successfully", products)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.useCase.SearchProducts(c.Query("q"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to search products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products fetched successfully", products)
}

func (h *ProductHandler) LowStockProducts(c *gin.Context) {
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid threshold parameter")
			return
		}
		threshold = parsed
	}

	products, err := h.useCase.LowStockProducts(threshold)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list low stock products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products fetched successfully", products)
}
