package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

type AuthHandler struct {
	useCase domain.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc domain.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterPublicRoutes mounts the routes that must work without a session.
func (h *AuthHandler) RegisterPublicRoutes(router gin.IRouter) {
	router.POST("/auth/login", h.Login)
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/auth/logout", h.Logout)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if requestBody.Username == "" || requestBody.Password == "" {
		ErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	sess, user, err := h.useCase.Login(requestBody.Username, requestBody.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			ErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.log.Errorf("Login failed for %s: %v", requestBody.Username, err)
		ErrorResponse(c, http.StatusInternalServerError, "Login failed")
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"token":     sess.Token,
		"user_id":   user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"is_admin":  h.useCase.IsAdmin(sess),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.useCase.Logout(sess); err != nil {
		h.log.Errorf("Logout failed for user %d: %v", sess.UserID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to log out: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}
