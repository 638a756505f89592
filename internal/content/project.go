package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var projectSchema = resource.Schema{
	Name:       "project",
	Table:      "projects",
	Columns:    []string{"id", "title", "description", "status", "image_url", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, created_at ASC",
	VisibleCol: "is_visible",
}

// CreateProjectRequest captures fields for creating projects.
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,oneof=planned active completed"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateProjectRequest is the sparse patch payload for projects.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned active completed"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

func buildProject(req CreateProjectRequest) models.Project {
	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectStatusPlanned,
		ImageURL:    req.ImageURL,
		IsVisible:   true,
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.SortOrder != nil {
		project.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		project.IsVisible = *req.IsVisible
	}
	return project
}

func applyProject(row *models.Project, req UpdateProjectRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		row.Title = *req.Title
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		row.Description = *req.Description
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		row.Status = *req.Status
		fields["status"] = *req.Status
	}
	if req.ImageURL != nil {
		row.ImageURL = req.ImageURL
		fields["image_url"] = *req.ImageURL
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

func newProjectHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.Project, CreateProjectRequest, UpdateProjectRequest] {
	store := resource.NewStore[models.Project](db, projectSchema)
	return resource.NewHandler(store, validate, logger, buildProject, applyProject)
}
