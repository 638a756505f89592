package resource

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type createGadgetRequest struct {
	Name      string `json:"name" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=widget gizmo"`
	SortOrder *int   `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
}

type updateGadgetRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	SortOrder *int    `json:"sort_order"`
	IsVisible *bool   `json:"is_visible"`
}

func buildGadget(req createGadgetRequest) gadget {
	g := gadget{Name: req.Name, IsVisible: true}
	if req.SortOrder != nil {
		g.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		g.IsVisible = *req.IsVisible
	}
	return g
}

func applyGadget(row *gadget, req updateGadgetRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		row.Name = *req.Name
		fields["name"] = *req.Name
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

func newGadgetHandler(t *testing.T) (*Handler[gadget, createGadgetRequest, updateGadgetRequest], sqlmock.Sqlmock) {
	t.Helper()
	store, mock := newGadgetStore(t)
	return NewHandler(store, NewValidator(), zap.NewNop(), buildGadget, applyGadget), mock
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, handle gin.HandlerFunc, method, target, id string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}

	handle(c)
	c.Writer.WriteHeaderNow()

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHandlerCreateMissingRequiredField(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	rec, env := doJSON(t, handler.Create, http.MethodPost, "/gadgets", "", `{"kind":"widget"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "name is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreateRejectsUnknownEnumValue(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	rec, env := doJSON(t, handler.Create, http.MethodPost, "/gadgets", "", `{"name":"alpha","kind":"sprocket"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "kind must be one of: widget, gizmo")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreateSuccess(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectExec("INSERT INTO gadgets").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, env := doJSON(t, handler.Create, http.MethodPost, "/gadgets", "", `{"name":"alpha","kind":"widget"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var created gadget
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "alpha", created.Name)
	assert.True(t, created.IsVisible)
	assert.NotEmpty(t, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A sparse patch must only touch the submitted columns.
func TestHandlerPatchSparse(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("alpha-id").
		WillReturnRows(gadgetRows("alpha"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE gadgets SET sort_order = $1, updated_at = $2 WHERE id = $3")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("alpha-id").
		WillReturnRows(gadgetRows("alpha"))

	rec, _ := doJSON(t, handler.Patch, http.MethodPatch, "/gadgets/alpha-id", "alpha-id", `{"sort_order":9}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerGetNotFound(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	rec, env := doJSON(t, handler.Get, http.MethodGet, "/gadgets/missing", "missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "gadget not found", env.Error.Message)
}

func TestHandlerDeleteNotFound(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	rec, _ := doJSON(t, handler.Delete, http.MethodDelete, "/gadgets/missing", "missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerListPublicFiltersHidden(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_visible = TRUE")).
		WillReturnRows(gadgetRows("alpha"))

	rec, env := doJSON(t, handler.ListPublic, http.MethodGet, "/gadgets", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var items []gadget
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerListEmptyIsArray(t *testing.T) {
	handler, mock := newGadgetHandler(t)

	mock.ExpectQuery("SELECT .+ FROM gadgets ORDER BY").
		WillReturnRows(gadgetRows())

	rec, _ := doJSON(t, handler.List, http.MethodGet, "/gadgets", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

// Write callbacks fire only after the store mutation succeeds.
func TestHandlerOnWriteFiresAfterMutations(t *testing.T) {
	handler, mock := newGadgetHandler(t)
	writes := 0
	handler.OnWrite(func(ctx context.Context) { writes++ })

	mock.ExpectExec("INSERT INTO gadgets").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec, _ := doJSON(t, handler.Create, http.MethodPost, "/gadgets", "", `{"name":"alpha","kind":"widget"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, writes)

	mock.ExpectQuery("SELECT .+ FROM gadgets WHERE id = \\$1").
		WithArgs("alpha-id").
		WillReturnRows(gadgetRows("alpha"))
	mock.ExpectExec("DELETE FROM gadgets WHERE id = \\$1").
		WithArgs("alpha-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec, _ = doJSON(t, handler.Delete, http.MethodDelete, "/gadgets/alpha-id", "alpha-id", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, writes)

	// validation failures never reach the store or the callback
	rec, _ = doJSON(t, handler.Create, http.MethodPost, "/gadgets", "", `{"kind":"widget"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, writes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
