package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/service"
	"github.com/roboreach/site-api/pkg/response"
)

// StatsHandler wires HTTP endpoints to the stats service.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Dashboard godoc
// @Summary Dashboard aggregates
// @Description Grouped counts for proposals, projects, partners and team members
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/stats [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, nil)
}
