package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var toolSchema = resource.Schema{
	Name:       "tool",
	Table:      "tools",
	Columns:    []string{"id", "name", "description", "category", "link_url", "is_popular", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, name ASC",
	VisibleCol: "is_visible",
}

// CreateToolRequest captures fields for creating tools.
type CreateToolRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,oneof=programming hardware software platform"`
	LinkURL     *string `json:"link_url" validate:"omitempty,url"`
	IsPopular   *bool   `json:"is_popular"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateToolRequest is the sparse patch payload for tools.
type UpdateToolRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Category    *string `json:"category" validate:"omitempty,oneof=programming hardware software platform"`
	LinkURL     *string `json:"link_url" validate:"omitempty,url"`
	IsPopular   *bool   `json:"is_popular"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

func buildTool(req CreateToolRequest) models.Tool {
	tool := models.Tool{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		LinkURL:     req.LinkURL,
		IsVisible:   true,
	}
	if req.IsPopular != nil {
		tool.IsPopular = *req.IsPopular
	}
	if req.SortOrder != nil {
		tool.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		tool.IsVisible = *req.IsVisible
	}
	return tool
}

func applyTool(row *models.Tool, req UpdateToolRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		row.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		row.Description = *req.Description
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		row.Category = *req.Category
		fields["category"] = *req.Category
	}
	if req.LinkURL != nil {
		row.LinkURL = req.LinkURL
		fields["link_url"] = *req.LinkURL
	}
	if req.IsPopular != nil {
		row.IsPopular = *req.IsPopular
		fields["is_popular"] = *req.IsPopular
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

func newToolHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.Tool, CreateToolRequest, UpdateToolRequest] {
	store := resource.NewStore[models.Tool](db, toolSchema)
	return resource.NewHandler(store, validate, logger, buildTool, applyTool)
}
