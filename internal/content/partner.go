package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var partnerSchema = resource.Schema{
	Name:       "partner",
	Table:      "partners",
	Columns:    []string{"id", "name", "type", "logo_url", "website_url", "sort_order", "is_visible", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, name ASC",
	VisibleCol: "is_visible",
}

// CreatePartnerRequest captures fields for creating partners.
type CreatePartnerRequest struct {
	Name       string  `json:"name" validate:"required"`
	Type       string  `json:"type" validate:"required,oneof=university corporate ngo"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,url"`
	WebsiteURL *string `json:"website_url" validate:"omitempty,url"`
	SortOrder  *int    `json:"sort_order"`
	IsVisible  *bool   `json:"is_visible"`
}

// UpdatePartnerRequest is the sparse patch payload for partners.
type UpdatePartnerRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Type       *string `json:"type" validate:"omitempty,oneof=university corporate ngo"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,url"`
	WebsiteURL *string `json:"website_url" validate:"omitempty,url"`
	SortOrder  *int    `json:"sort_order"`
	IsVisible  *bool   `json:"is_visible"`
}

func buildPartner(req CreatePartnerRequest) models.Partner {
	partner := models.Partner{
		Name:       req.Name,
		Type:       req.Type,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		IsVisible:  true,
	}
	if req.SortOrder != nil {
		partner.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		partner.IsVisible = *req.IsVisible
	}
	return partner
}

func applyPartner(row *models.Partner, req UpdatePartnerRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		row.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Type != nil {
		row.Type = *req.Type
		fields["type"] = *req.Type
	}
	if req.LogoURL != nil {
		row.LogoURL = req.LogoURL
		fields["logo_url"] = *req.LogoURL
	}
	if req.WebsiteURL != nil {
		row.WebsiteURL = req.WebsiteURL
		fields["website_url"] = *req.WebsiteURL
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

func newPartnerHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.Partner, CreatePartnerRequest, UpdatePartnerRequest] {
	store := resource.NewStore[models.Partner](db, partnerSchema)
	return resource.NewHandler(store, validate, logger, buildPartner, applyPartner)
}
