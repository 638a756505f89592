package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/roboreach/site-api/pkg/errors"
)

func record(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return rec
}

func TestJSONCarriesPaginationAndMeta(t *testing.T) {
	rec := record(t, func(c *gin.Context) {
		JSON(c, http.StatusOK, []string{"a"}, &Pagination{Page: 2, PageSize: 20, TotalCount: 41},
			map[string]interface{}{"generated_at": "2026-03-01T09:00:00Z"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "data")
	assert.Contains(t, body, "pagination")
	assert.Contains(t, body, "meta")

	var pagination Pagination
	require.NoError(t, json.Unmarshal(body["pagination"], &pagination))
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestJSONOmitsAbsentEnvelopeFields(t *testing.T) {
	rec := record(t, func(c *gin.Context) {
		JSON(c, http.StatusOK, []string{}, nil)
	})

	body := rec.Body.String()
	assert.Contains(t, body, `"data":[]`)
	assert.NotContains(t, body, "pagination")
	assert.NotContains(t, body, "meta")
}

func TestErrorUsesNormalizedStatus(t *testing.T) {
	rec := record(t, func(c *gin.Context) {
		Error(c, appErrors.Clone(appErrors.ErrNotFound, "gadget not found"))
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "gadget not found")
}
