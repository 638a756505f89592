package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/service"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// DonationHandler wires HTTP endpoints to the donation service.
type DonationHandler struct {
	service *service.DonationService
}

// NewDonationHandler creates a new handler.
func NewDonationHandler(svc *service.DonationService) *DonationHandler {
	return &DonationHandler{service: svc}
}

// Create godoc
// @Summary Record a donation
// @Description Record a supporter contribution in pending state
// @Tags Donations
// @Accept json
// @Produce json
// @Param payload body service.CreateDonationRequest true "Donation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid donation payload"))
		return
	}

	donation, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, donation)
}

// Totals godoc
// @Summary Donation totals
// @Description Sum and count of completed donations
// @Tags Donations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /donations/total [get]
func (h *DonationHandler) Totals(c *gin.Context) {
	totals, err := h.service.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, totals, nil)
}

// List godoc
// @Summary List donations
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	filter := models.DonationFilter{Status: c.Query("status")}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	donations, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, donations, pagination)
}

// Export godoc
// @Summary Export the donation ledger
// @Description Render all donations as a CSV or PDF report
// @Tags Donations
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/donations/export [get]
func (h *DonationHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	content, contentType, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("donations-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}
