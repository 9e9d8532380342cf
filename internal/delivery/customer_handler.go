package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

type CustomerHandler struct {
	useCase domain.CustomerUseCase
	log     *logrus.Logger
}

func NewCustomerHandler(uc domain.CustomerUseCase, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CustomerHandler) RegisterRoutes(router gin.IRouter) {
	customers := router.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/search", h.SearchCustomers)
		customers.GET("/:id", h.GetCustomerByID)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

type customerRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var requestBody customerRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer := domain.Customer{
		Name:          requestBody.Name,
		ContactNumber: requestBody.ContactNumber,
		Email:         requestBody.Email,
		Address:       requestBody.Address,
	}
	created, err := h.useCase.AddCustomer(&customer)
	if err != nil {
		h.log.Errorf("Failed to create customer: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create customer: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Customer created successfully", created)
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.useCase.GetCustomer(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch customer: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Customer fetched successfully", customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var requestBody customerRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer := domain.Customer{
		ID:            id,
		Name:          requestBody.Name,
		ContactNumber: requestBody.ContactNumber,
		Email:         requestBody.Email,
		Address:       requestBody.Address,
	}
	updated, err := h.useCase.UpdateCustomer(&customer)
	if err != nil {
		h.log.Errorf("Failed to update customer %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update customer: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Customer updated successfully", updated)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteCustomer(id); err != nil {
		h.log.Errorf("Failed to delete customer %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete customer: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Customer deleted successfully", nil)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.useCase.ListCustomers()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list customers: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Customers fetched successfully", customers)
}

func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.useCase.SearchCustomers(c.Query("q"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to search customers: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Customers fetched successfully", customers)
}
