package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
	"github.com/younes-radi/order-app/internal/usecase"
)

// SessionKey is the gin context key under which SessionAuth stores the
// resolved session.
const SessionKey = "session"

// SessionAuth resolves the bearer token into a live session and aborts
// with 401 when the token is missing or unknown.
func SessionAuth(sessions *usecase.SessionRegistry, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warnf("Middleware: Invalid Authorization header format: %s", authHeader)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Invalid Authorization header format"})
			return
		}

		token := parts[1]
		sess, ok := sessions.Get(token)
		if !ok {
			log.Warnf("Middleware: Unknown session token from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Invalid or expired session"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// AdminOnly requires a session whose user holds the admin role. It must
// run after SessionAuth.
func AdminOnly(auth domain.AuthUseCase, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(SessionKey)
		sess, ok := value.(*domain.Session)
		if !exists || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Authentication required"})
			return
		}

		if !auth.IsAdmin(sess) {
			log.Warnf("Middleware: User %d attempted an admin action without permission", sess.UserID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"Status": "Fail", "Message": "Admin privileges required"})
			return
		}

		c.Next()
	}
}
