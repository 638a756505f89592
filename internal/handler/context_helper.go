package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/middleware"
	"github.com/roboreach/site-api/internal/models"
)

func adminFromContext(c *gin.Context) *models.Admin {
	value, exists := c.Get(middleware.ContextAdminKey)
	if !exists {
		return nil
	}
	admin, ok := value.(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}
