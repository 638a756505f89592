package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var impactMetricSchema = resource.Schema{
	Name:       "impact metric",
	Table:      "impact_metrics",
	Columns:    []string{"id", "label", "value", "unit", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, created_at ASC",
	VisibleCol: "is_visible",
}

// CreateImpactMetricRequest captures fields for creating impact metrics.
type CreateImpactMetricRequest struct {
	Label     string  `json:"label" validate:"required"`
	Value     string  `json:"value" validate:"required"`
	Unit      *string `json:"unit"`
	SortOrder *int    `json:"sort_order"`
	IsVisible *bool   `json:"is_visible"`
}

// UpdateImpactMetricRequest is the sparse patch payload for impact metrics.
type UpdateImpactMetricRequest struct {
	Label     *string `json:"label" validate:"omitempty,min=1"`
	Value     *string `json:"value" validate:"omitempty,min=1"`
	Unit      *string `json:"unit"`
	SortOrder *int    `json:"sort_order"`
	IsVisible *bool   `json:"is_visible"`
}

func buildImpactMetric(req CreateImpactMetricRequest) models.ImpactMetric {
	metric := models.ImpactMetric{
		Label:     req.Label,
		Value:     req.Value,
		Unit:      req.Unit,
		IsVisible: true,
	}
	if req.SortOrder != nil {
		metric.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		metric.IsVisible = *req.IsVisible
	}
	return metric
}

func applyImpactMetric(row *models.ImpactMetric, req UpdateImpactMetricRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Label != nil {
		row.Label = *req.Label
		fields["label"] = *req.Label
	}
	if req.Value != nil {
		row.Value = *req.Value
		fields["value"] = *req.Value
	}
	if req.Unit != nil {
		row.Unit = req.Unit
		fields["unit"] = *req.Unit
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

func newImpactMetricHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.ImpactMetric, CreateImpactMetricRequest, UpdateImpactMetricRequest] {
	store := resource.NewStore[models.ImpactMetric](db, impactMetricSchema)
	return resource.NewHandler(store, validate, logger, buildImpactMetric, applyImpactMetric)
}
