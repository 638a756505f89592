package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/service"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// SettingHandler wires HTTP endpoints to the setting service.
type SettingHandler struct {
	service *service.SettingService
}

// NewSettingHandler creates a new handler.
func NewSettingHandler(svc *service.SettingService) *SettingHandler {
	return &SettingHandler{service: svc}
}

// List godoc
// @Summary List site settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, settings, nil)
}

// Upsert godoc
// @Summary Save a site setting
// @Description Insert or replace a setting by key
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param payload body object{value=string} true "Setting value"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/settings/{key} [put]
func (h *SettingHandler) Upsert(c *gin.Context) {
	var payload struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid setting payload"))
		return
	}

	setting, err := h.service.Upsert(c.Request.Context(), c.Param("key"), payload.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, setting, nil)
}
