package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var resourceSchema = resource.Schema{
	Name:       "resource",
	Table:      "resources",
	Columns:    []string{"id", "title", "description", "type", "url", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, title ASC",
	VisibleCol: "is_visible",
}

// CreateResourceRequest captures fields for creating learning resources.
type CreateResourceRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=guide video article dataset"`
	URL         string  `json:"url" validate:"required,url"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateResourceRequest is the sparse patch payload for learning resources.
type UpdateResourceRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,oneof=guide video article dataset"`
	URL         *string `json:"url" validate:"omitempty,url"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

func buildResource(req CreateResourceRequest) models.Resource {
	res := models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		IsVisible:   true,
	}
	if req.SortOrder != nil {
		res.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		res.IsVisible = *req.IsVisible
	}
	return res
}

func applyResource(row *models.Resource, req UpdateResourceRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		row.Title = *req.Title
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		row.Description = req.Description
		fields["description"] = *req.Description
	}
	if req.Type != nil {
		row.Type = *req.Type
		fields["type"] = *req.Type
	}
	if req.URL != nil {
		row.URL = *req.URL
		fields["url"] = *req.URL
	}
	if req.SortOrder != nil {
		row.SortOrder = *req.SortOrder
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsVisible != nil {
		row.IsVisible = *req.IsVisible
		fields["is_visible"] = *req.IsVisible
	}
	return fields
}

func newResourceHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.Resource, CreateResourceRequest, UpdateResourceRequest] {
	store := resource.NewStore[models.Resource](db, resourceSchema)
	return resource.NewHandler(store, validate, logger, buildResource, applyResource)
}
