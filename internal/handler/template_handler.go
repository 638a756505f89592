package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roboreach/site-api/internal/service"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// TemplateHandler wires HTTP endpoints to the template service.
type TemplateHandler struct {
	service        *service.TemplateService
	metrics        *service.MetricsService
	maxUploadBytes int64
}

// NewTemplateHandler creates a new handler. metrics may be nil.
func NewTemplateHandler(svc *service.TemplateService, metrics *service.MetricsService, maxUploadBytes int64) *TemplateHandler {
	return &TemplateHandler{service: svc, metrics: metrics, maxUploadBytes: maxUploadBytes}
}

// List godoc
// @Summary List proposal templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, templates, nil)
}

// Upload godoc
// @Summary Upload a proposal template
// @Description Store a template document and register it for download
// @Tags Templates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Template display name"
// @Param is_active formData boolean false "Whether the template is downloadable"
// @Param file formData file true "Template document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/templates [post]
func (h *TemplateHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", h.maxUploadBytes)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file"))
		return
	}

	req := service.UploadTemplateRequest{
		Name:     c.PostForm("name"),
		Filename: fileHeader.Filename,
	}
	if raw, ok := c.GetPostForm("is_active"); ok {
		active, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active must be a boolean"))
			return
		}
		req.IsActive = &active
	}

	template, err := h.service.Upload(c.Request.Context(), req, content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, template)
}

// Update godoc
// @Summary Update a proposal template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param payload body service.UpdateTemplateRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/templates/{id} [patch]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req service.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}

	template, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, template, nil)
}

// Delete godoc
// @Summary Delete a proposal template
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Download godoc
// @Summary Download a proposal template
// @Description Stream the template document as an attachment
// @Tags Templates
// @Produce application/octet-stream
// @Param id path string true "Template ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /templates/{id}/download [get]
func (h *TemplateHandler) Download(c *gin.Context) {
	h.download(c, c.Param("id"))
}

// DownloadActive godoc
// @Summary Download the current proposal template
// @Description Stream the most recently published active template
// @Tags Templates
// @Produce application/octet-stream
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /templates/download [get]
func (h *TemplateHandler) DownloadActive(c *gin.Context) {
	h.download(c, "")
}

func (h *TemplateHandler) download(c *gin.Context, id string) {
	download, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordTemplateDownload(download.TemplateID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Content-Length", strconv.FormatInt(int64(len(download.Content)), 10))
	c.Data(http.StatusOK, download.ContentType, download.Content)
}
