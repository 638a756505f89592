package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/storage"
)

type templateRepository interface {
	List(ctx context.Context) ([]models.ProposalTemplate, error)
	FindByID(ctx context.Context, id string) (*models.ProposalTemplate, error)
	FindActiveLatest(ctx context.Context) (*models.ProposalTemplate, error)
	Create(ctx context.Context, template *models.ProposalTemplate) error
	Update(ctx context.Context, template *models.ProposalTemplate) error
	Delete(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
}

type templateStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
}

// Closed extension to content-type mapping. Content is never sniffed.
var templateContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
}

const templateFallbackContentType = "application/octet-stream"

// UploadTemplateRequest carries the metadata for a template upload.
type UploadTemplateRequest struct {
	Name     string `validate:"required"`
	Filename string `validate:"required"`
	IsActive *bool
}

// UpdateTemplateRequest renames or (de)activates a template.
type UpdateTemplateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// TemplateDownload is a resolved document ready to stream to the caller.
type TemplateDownload struct {
	TemplateID  string
	Content     []byte
	ContentType string
	Filename    string
}

// TemplateService manages proposal template documents and their delivery.
type TemplateService struct {
	repo      templateRepository
	storage   templateStorage
	validator *validator.Validate
	logger    *zap.Logger

	allowedExtensions map[string]struct{}
}

// NewTemplateService creates a new template service.
func NewTemplateService(repo templateRepository, store templateStorage, validate *validator.Validate, logger *zap.Logger, allowedExtensions []string) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &TemplateService{repo: repo, storage: store, validator: validate, logger: logger, allowedExtensions: allowed}
}

// List returns all templates for the admin surface.
func (s *TemplateService) List(ctx context.Context) ([]models.ProposalTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	return templates, nil
}

// Upload stores the document bytes and records the template row.
func (s *TemplateService) Upload(ctx context.Context, req UploadTemplateRequest, content []byte) (*models.ProposalTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, resource.ValidationError(err)
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if len(s.allowedExtensions) > 0 {
		if _, ok := s.allowedExtensions[ext]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "file extension not allowed")
		}
	}

	storedName := uuid.NewString() + ext
	if _, err := s.storage.Save(storedName, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store template file")
	}

	template := &models.ProposalTemplate{
		Name:     req.Name,
		Filename: storedName,
		IsActive: true,
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, template); err != nil {
		if cleanupErr := s.storage.Delete(storedName); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned template file", zap.String("filename", storedName), zap.Error(cleanupErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create template")
	}
	return template, nil
}

// Update renames or toggles a template. Absent fields stay untouched.
func (s *TemplateService) Update(ctx context.Context, id string, req UpdateTemplateRequest) (*models.ProposalTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, resource.ValidationError(err)
	}

	template, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update template")
	}
	return template, nil
}

// Delete removes the template row and its stored file.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	template, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	if err := s.storage.Delete(template.Filename); err != nil {
		s.logger.Warn("failed to remove template file", zap.String("filename", template.Filename), zap.Error(err))
	}
	return nil
}

// Download resolves a template (by id, or the most recently created active
// one when id is empty) and returns its bytes. The download counter is
// incremented only after the file read succeeds, so a storage miss never
// inflates the count.
func (s *TemplateService) Download(ctx context.Context, id string) (*TemplateDownload, error) {
	var template *models.ProposalTemplate
	var err error
	if id == "" {
		template, err = s.repo.FindActiveLatest(ctx)
	} else {
		template, err = s.repo.FindByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}

	content, err := s.storage.Read(template.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read template file")
	}

	if err := s.repo.IncrementDownloads(ctx, template.ID); err != nil {
		s.logger.Warn("failed to increment download count", zap.String("template_id", template.ID), zap.Error(err))
	}

	ext := strings.ToLower(filepath.Ext(template.Filename))
	contentType, ok := templateContentTypes[ext]
	if !ok {
		contentType = templateFallbackContentType
	}

	return &TemplateDownload{
		TemplateID:  template.ID,
		Content:     content,
		ContentType: contentType,
		Filename:    template.Name + ext,
	}, nil
}

func (s *TemplateService) find(ctx context.Context, id string) (*models.ProposalTemplate, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	return template, nil
}
