package content

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var timelineSchema = resource.Schema{
	Name:       "timeline item",
	Table:      "timeline_items",
	Columns:    []string{"id", "title", "description", "phase", "happens_at", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, created_at ASC",
	VisibleCol: "is_visible",
}

// CreateTimelineItemRequest captures fields for creating launch timeline items.
type CreateTimelineItemRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Phase       *string    `json:"phase"`
	HappensAt   *time.Time `json:"happens_at"`
	SortOrder   *int       `json:"sort_order"`
	IsVisible   *bool      `json:"is_visible"`
}

// UpdateTimelineItemRequest is the sparse patch payload for timeline items.
type UpdateTimelineItemRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Phase       *string    `json:"phase"`
	HappensAt   *time.Time `json:"happens_at"`
	SortOrder   *int       `json:"sort_order"`
	IsVisible   *bool      `json:"is_visible"`
}

func buildTimelineItem(req CreateTimelineItemRequest) models.TimelineItem {
	item := models.TimelineItem{
		Title:       req.Title,
		Description: req.Description,
		Phase:       req.Phase,
		HappensAt:   req.HappensAt,
		IsVisible:   true,
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		item.IsVisible = *req.IsVisible
	}
	return item
}

func applyTimelineItem(row *models.TimelineItem, req UpdateTimelineItemRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		row.Title = *req.Title
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		row.Description = req.Description
		fields["description"] = *req.Description
	}
	if req.Phase != nil {
		row.Phase = req.Phase
		fields["phase"] = *req.Phase
	}
	if req.HappensAt != nil {
		row.HappensAt = req.HappensAt
		fields["happens_at"] = *req.HappensAt
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

func newTimelineHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.TimelineItem, CreateTimelineItemRequest, UpdateTimelineItemRequest] {
	store := resource.NewStore[models.TimelineItem](db, timelineSchema)
	return resource.NewHandler(store, validate, logger, buildTimelineItem, applyTimelineItem)
}
