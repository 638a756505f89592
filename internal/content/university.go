package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

var universitySchema = resource.Schema{
	Name:       "university",
	Table:      "universities",
	Columns:    []string{"id", "name", "location", "is_active", "created_at", "updated_at"},
	OrderBy:    "name ASC, created_at ASC",
	VisibleCol: "is_active",
}

// CreateUniversityRequest captures fields for creating universities. Name is
// unique; a duplicate surfaces as a conflict, not a validation failure.
type CreateUniversityRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location *string `json:"location"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUniversityRequest is the sparse patch payload for universities.
type UpdateUniversityRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Location *string `json:"location"`
	IsActive *bool   `json:"is_active"`
}

func buildUniversity(req CreateUniversityRequest) models.University {
	university := models.University{
		Name:     req.Name,
		Location: req.Location,
		IsActive: true,
	}
	if req.IsActive != nil {
		university.IsActive = *req.IsActive
	}
	return university
}

func applyUniversity(row *models.University, req UpdateUniversityRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		row.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Location != nil {
		row.Location = req.Location
		fields["location"] = *req.Location
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
		fields["is_active"] = *req.IsActive
	}
	return fields
}

func newUniversityHandler(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *resource.Handler[models.University, CreateUniversityRequest, UpdateUniversityRequest] {
	store := resource.NewStore[models.University](db, universitySchema)
	return resource.NewHandler(store, validate, logger, buildUniversity, applyUniversity)
}

// PublicUniversities serves active universities projected to id and name
// only. Location and internal flags stay private.
func (r *Registry) PublicUniversities(c *gin.Context) {
	rows, err := r.Universities.Store().List(c.Request.Context(), true)
	if err != nil {
		r.logger.Error("list universities failed", zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
		return
	}

	projected := make([]models.UniversityPublic, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, models.UniversityPublic{ID: row.ID, Name: row.Name})
	}
	response.JSON(c, http.StatusOK, projected, nil)
}
