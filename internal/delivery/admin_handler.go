package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

// AdminHandler groups the operations reserved for the admin role: user
// administration and database maintenance. Its routes must be mounted
// behind the AdminOnly middleware.
type AdminHandler struct {
	authUseCase        domain.AuthUseCase
	maintenanceUseCase domain.MaintenanceUseCase
	log                *logrus.Logger
}

func NewAdminHandler(authUC domain.AuthUseCase, maintenanceUC domain.MaintenanceUseCase, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		authUseCase:        authUC,
		maintenanceUseCase: maintenanceUC,
		log:                logger,
	}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter) {
	admin := router.Group("/admin")
	{
		admin.POST("/users", h.RegisterUser)
		admin.GET("/users", h.ListUsers)
		admin.GET("/roles", h.ListRoles)
		admin.POST("/backup", h.BackupDatabase)
		admin.POST("/restore", h.RestoreDatabase)
	}
}

func (h *AdminHandler) RegisterUser(c *gin.Context) {
	var requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authUseCase.RegisterUser(
		requestBody.Username,
		requestBody.Password,
		requestBody.FullName,
		requestBody.Email,
		requestBody.Role,
	)
	if err != nil {
		h.log.Errorf("Failed to register user %s: %v", requestBody.Username, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to register user: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authUseCase.ListUsers()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list users: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Users fetched successfully", users)
}

func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.authUseCase.ListRoles()
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list roles: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Roles fetched successfully", roles)
}

func (h *AdminHandler) BackupDatabase(c *gin.Context) {
	var requestBody struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.maintenanceUseCase.BackupDatabase(requestBody.Path); err != nil {
		h.log.Errorf("Backup to %s failed: %v", requestBody.Path, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to back up database: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Database backed up successfully", gin.H{"path": requestBody.Path})
}

func (h *AdminHandler) RestoreDatabase(c *gin.Context) {
	var requestBody struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.maintenanceUseCase.RestoreDatabase(requestBody.Path); err != nil {
		h.log.Errorf("Restore from %s failed: %v", requestBody.Path, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to restore database: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Database restored successfully", gin.H{"path": requestBody.Path})
}
