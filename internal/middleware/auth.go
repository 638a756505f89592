package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/service"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// ContextAdminKey is the gin context key storing the authenticated admin.
const ContextAdminKey = "currentAdmin"

// Auth protects routes by requiring a valid access token backed by an
// admin account that is still active. Every failure mode returns the same
// 401 so callers cannot probe which accounts exist.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		admin, err := authService.ResolvePrincipal(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}
