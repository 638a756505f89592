package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/roboreach/site-api/pkg/errors"
	"github.com/roboreach/site-api/pkg/response"
)

// Handler serves the generic list/create/patch/delete contract for one
// managed entity. C is the create payload, U the sparse update payload whose
// fields are pointers so an absent field is distinguishable from a zero one.
type Handler[T any, C any, U any] struct {
	store    *Store[T]
	validate *validator.Validate
	logger   *zap.Logger

	// build converts a validated create payload into a row with declared
	// defaults applied. apply copies only provided fields onto the row and
	// returns the changed column set.
	build func(C) T
	apply func(*T, U) map[string]interface{}

	// onWrite runs after a successful create, patch or delete.
	onWrite func(ctx context.Context)
}

// NewHandler wires a generic handler for one entity.
func NewHandler[T any, C any, U any](
	store *Store[T],
	validate *validator.Validate,
	logger *zap.Logger,
	build func(C) T,
	apply func(*T, U) map[string]interface{},
) *Handler[T, C, U] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler[T, C, U]{store: store, validate: validate, logger: logger, build: build, apply: apply}
}

// Store exposes the underlying store for routes needing direct reads.
func (h *Handler[T, C, U]) Store() *Store[T] {
	return h.store
}

// OnWrite registers a callback invoked after every successful mutation.
func (h *Handler[T, C, U]) OnWrite(fn func(ctx context.Context)) {
	h.onWrite = fn
}

func (h *Handler[T, C, U]) notifyWrite(ctx context.Context) {
	if h.onWrite != nil {
		h.onWrite(ctx)
	}
}

// List returns every row, hidden ones included. Admin surface.
func (h *Handler[T, C, U]) List(c *gin.Context) {
	h.list(c, false)
}

// ListPublic returns only visible/active rows. Unauthenticated surface.
func (h *Handler[T, C, U]) ListPublic(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler[T, C, U]) list(c *gin.Context, visibleOnly bool) {
	items, err := h.store.List(c.Request.Context(), visibleOnly)
	if err != nil {
		h.logger.Error("list failed", zap.String("resource", h.store.Schema().Name), zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get returns a single row by id.
func (h *Handler[T, C, U]) Get(c *gin.Context) {
	item, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.lookupError(err))
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create validates the payload, applies defaults and inserts a new row.
func (h *Handler[T, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, ValidationError(err))
		return
	}

	row := h.build(req)
	if err := h.store.Insert(c.Request.Context(), &row); err != nil {
		response.Error(c, h.storeError("create failed", err))
		return
	}
	h.notifyWrite(c.Request.Context())
	response.Created(c, row)
}

// Patch applies a sparse update: fields absent from the payload keep their
// stored values.
func (h *Handler[T, C, U]) Patch(c *gin.Context) {
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, ValidationError(err))
		return
	}

	ctx := c.Request.Context()
	row, err := h.store.FindByID(ctx, c.Param("id"))
	if err != nil {
		response.Error(c, h.lookupError(err))
		return
	}

	fields := h.apply(row, req)
	updated, err := h.store.Update(ctx, c.Param("id"), fields)
	if err != nil {
		response.Error(c, h.storeError("update failed", err))
		return
	}
	h.notifyWrite(ctx)
	response.JSON(c, http.StatusOK, updated, nil)
}

// Delete removes a row permanently. Deactivation of entities carrying a
// visibility flag is a Patch, not a Delete.
func (h *Handler[T, C, U]) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.store.FindByID(ctx, c.Param("id")); err != nil {
		response.Error(c, h.lookupError(err))
		return
	}
	if err := h.store.Delete(ctx, c.Param("id")); err != nil {
		response.Error(c, h.storeError("delete failed", err))
		return
	}
	h.notifyWrite(ctx)
	response.NoContent(c)
}

func (h *Handler[T, C, U]) lookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", h.store.Schema().Name))
	}
	h.logger.Error("lookup failed", zap.String("resource", h.store.Schema().Name), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}

func (h *Handler[T, C, U]) storeError(msg string, err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	h.logger.Error(msg, zap.String("resource", h.store.Schema().Name), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}
