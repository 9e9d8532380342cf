package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

// The /orders/current subtree operates on the order the session is
// building; the rest are plain lookups over stored orders.
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/current", h.GetCurrentOrder)
		orders.GET("/current/items", h.ListCurrentOrderItems)
		orders.POST("/current/items", h.AddOrderItem)
		orders.PATCH("/current/items/:itemId", h.UpdateOrderItemQuantity)
		orders.DELETE("/current/items/:itemId", h.RemoveOrderItem)
		orders.POST("/current/cancel", h.CancelOrder)
		orders.POST("/current/payment", h.ProcessPayment)
		orders.GET("/:id", h.GetOrderByID)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var requestBody struct {
		CustomerID int64 `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if requestBody.CustomerID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: customer_id is required")
		return
	}

	order, err := h.useCase.CreateOrder(sess, requestBody.CustomerID)
	if err != nil {
		h.log.Errorf("Failed to create order for customer %d: %v", requestBody.CustomerID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) GetCurrentOrder(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.useCase.CurrentOrder(sess)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch current order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Current order fetched successfully", order)
}

func (h *OrderHandler) ListCurrentOrderItems(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.useCase.CurrentOrderItems(sess)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch order items: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order items fetched successfully", items)
}

func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var requestBody struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if requestBody.ProductID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: product_id is required")
		return
	}

	item, err := h.useCase.AddOrderItem(sess, requestBody.ProductID, requestBody.Quantity)
	if err != nil {
		h.log.Errorf("Failed to add product %d to current order: %v", requestBody.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add order item: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Order item added successfully", item)
}

func (h *OrderHandler) UpdateOrderItemQuantity(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var requestBody struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.UpdateOrderItemQuantity(sess, itemID, requestBody.Quantity); err != nil {
		h.log.Errorf("Failed to update quantity for item %d: %v", itemID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update order item: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order item updated successfully", nil)
}

func (h *OrderHandler) RemoveOrderItem(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.useCase.RemoveOrderItem(sess, itemID); err != nil {
		h.log.Errorf("Failed to remove item %d from current order: %v", itemID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove order item: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order item removed successfully", nil)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.useCase.CancelOrder(sess); err != nil {
		h.log.Errorf("Failed to cancel current order: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to cancel order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order cancelled successfully", nil)
}

func (h *OrderHandler) ProcessPayment(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var requestBody struct {
		Amount          float64 `json:"amount"`
		PaymentType     string  `json:"payment_type"`
		ReferenceNumber string  `json:"reference_number"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.useCase.ProcessPayment(sess,
		requestBody.Amount,
		domain.PaymentType(requestBody.PaymentType),
		requestBody.ReferenceNumber,
	)
	if err != nil {
		h.log.Errorf("Failed to process payment: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to process payment: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Payment processed successfully", payment)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.useCase.GetOrder(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order fetched successfully", order)
}

// ListOrders dispatches on whichever filter the query string carries:
// customer_id, status, or a from/to date pair.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var orders []domain.Order
	var err error

	switch {
	case c.Query("customer_id") != "":
		var customerID int64
		customerID, err = strconv.ParseInt(c.Query("customer_id"), 10, 64)
		if err != nil || customerID <= 0 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid customer_id parameter")
			return
		}
		orders, err = h.useCase.ListOrdersByCustomer(customerID)

	case c.Query("status") != "":
		orders, err = h.useCase.ListOrdersByStatus(domain.OrderStatus(c.Query("status")))

	case c.Query("from") != "" && c.Query("to") != "":
		from, parseErr := time.Parse("2006-01-02", c.Query("from"))
		if parseErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid from parameter, expected YYYY-MM-DD")
			return
		}
		to, parseErr := time.Parse("2006-01-02", c.Query("to"))
		if parseErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid to parameter, expected YYYY-MM-DD")
			return
		}
		orders, err = h.useCase.ListOrdersByDateRange(from, to.AddDate(0, 0, 1).Add(-time.Second))

	default:
		ErrorResponse(c, http.StatusBadRequest, "Provide customer_id, status, or from/to query parameters")
		return
	}

	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list orders: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders fetched successfully", orders)
}
