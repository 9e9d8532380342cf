package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/younes-radi/order-app/internal/domain"
	"github.com/younes-radi/order-app/internal/middleware"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// mapErrorToStatus translates the domain error kinds into HTTP statuses.
// Anything outside the taxonomy is an unexpected failure and maps to 500.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidStateTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// parseIDParam reads a positive integer path parameter. On failure it
// writes the 400 response itself and reports ok=false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// sessionFromContext returns the session stored by the auth middleware,
// or nil when the handler runs outside an authenticated route.
func sessionFromContext(c *gin.Context) *domain.Session {
	value, exists := c.Get(middleware.SessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*domain.Session)
	if !ok {
		return nil
	}
	return sess
}
