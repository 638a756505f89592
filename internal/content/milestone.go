package content

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var milestoneSchema = resource.Schema{
	Name:       "milestone",
	Table:      "milestones",
	Columns:    []string{"id", "title", "description", "target_date", "achieved", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, created_at ASC",
	VisibleCol: "is_visible",
}

// CreateMilestoneRequest captures fields for creating milestones.
type CreateMilestoneRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Achieved    *bool      `json:"achieved"`
	SortOrder   *int       `json:"sort_order"`
	IsVisible   *bool      `json:"is_visible"`
}

// UpdateMilestoneRequest is the sparse patch payload for milestones.
type UpdateMilestoneRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Achieved    *bool      `json:"achieved"`
	SortOrder   *int       `json:"sort_order"`
	IsVisible   *bool      `json:"is_visible"`
}

func buildMilestone(req CreateMilestoneRequest) models.Milestone {
	milestone := models.Milestone{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		IsVisible:   true,
	}
	if req.Achieved != nil {
		milestone.Achieved = *req.Achieved
	}
	if req.SortOrder != nil {
		milestone.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		milestone.IsVisible = *req.IsVisible
	}
	return milestone
}

func applyMilestone(row *models.Milestone, req UpdateMilestoneRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		row.Title = *req.Title
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		row.Description = req.Description
		fields["description"] = *req.Description
	}
	if req.TargetDate != nil {
		row.TargetDate = req.TargetDate
		fields["target_date"] = *req.TargetDate
	}
	if req.Achieved != nil {
		row.Achieved = *req.Achieved
		fields["achieved"] = *req.Achieved
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

func newMilestoneHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.Milestone, CreateMilestoneRequest, UpdateMilestoneRequest] {
	store := resource.NewStore[models.Milestone](db, milestoneSchema)
	return resource.NewHandler(store, validate, logger, buildMilestone, applyMilestone)
}
