package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

var teamMemberSchema = resource.Schema{
	Name:       "team member",
	Table:      "team_members",
	Columns:    []string{"id", "name", "role", "bio", "photo_url", "sort_order", "is_active", "created_at", "updated_at"},
	OrderBy:    "sort_order ASC, name ASC",
	VisibleCol: "is_active",
}

// CreateTeamMemberRequest captures fields for creating team members.
type CreateTeamMemberRequest struct {
	Name      string  `json:"name" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	Bio       *string `json:"bio"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateTeamMemberRequest is the sparse patch payload for team members.
type UpdateTeamMemberRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Role      *string `json:"role" validate:"omitempty,min=1"`
	Bio       *string `json:"bio"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

func buildTeamMember(req CreateTeamMemberRequest) models.TeamMember {
	member := models.TeamMember{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
		IsActive: true,
	}
	if req.SortOrder != nil {
		member.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	return member
}

func applyTeamMember(row *models.TeamMember, req UpdateTeamMemberRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		row.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		row.Role = *req.Role
		fields["role"] = *req.Role
	}
	if req.Bio != nil {
		row.Bio = req.Bio
		fields["bio"] = *req.Bio
	}
	if req.PhotoURL != nil {
		row.PhotoURL = req.PhotoURL
		fields["photo_url"] = *req.PhotoURL
	}
	if req.SortOrder != nil {
		row.SortOrder = *req.SortOrder
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
		fields["is_active"] = *req.IsActive
	}
	return fields
}

func newTeamMemberHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.TeamMember, CreateTeamMemberRequest, UpdateTeamMemberRequest] {
	store := resource.NewStore[models.TeamMember](db, teamMemberSchema)
	return resource.NewHandler(store, validate, logger, buildTeamMember, applyTeamMember)
}
