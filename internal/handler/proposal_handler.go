package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/service"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// ProposalHandler wires HTTP endpoints to the proposal service.
type ProposalHandler struct {
	service *service.ProposalService
}

// NewProposalHandler creates a new handler.
func NewProposalHandler(svc *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: svc}
}

// Submit godoc
// @Summary Submit a proposal
// @Description Submit a robotics program proposal for review
// @Tags Proposals
// @Accept json
// @Produce json
// @Param payload body service.SubmitProposalRequest true "Proposal payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /proposals [post]
func (h *ProposalHandler) Submit(c *gin.Context) {
	var req service.SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid proposal payload"))
		return
	}

	proposal, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, proposal)
}

// List godoc
// @Summary List proposals
// @Description List proposal submissions, optionally filtered by status
// @Tags Proposals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	filter := models.ProposalFilter{Status: c.Query("status")}

	proposals, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, proposals, nil)
}

// Get godoc
// @Summary Get a proposal
// @Tags Proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/proposals/{id} [get]
func (h *ProposalHandler) Get(c *gin.Context) {
	proposal, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, proposal, nil)
}

// Review godoc
// @Summary Review a proposal
// @Description Update proposal status and notes; reviewer and time are stamped server-side
// @Tags Proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Param payload body service.ReviewProposalRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/proposals/{id} [patch]
func (h *ProposalHandler) Review(c *gin.Context) {
	var req service.ReviewProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	proposal, err := h.service.Review(c.Request.Context(), c.Param("id"), req, adminFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, proposal, nil)
}

// Delete godoc
// @Summary Delete a proposal
// @Tags Proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
