package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/service"
	"github.com/roboreach/site-api/pkg/storage"
)

type fakeTemplateRepo struct {
	template    *models.ProposalTemplate
	findErr     error
	incremented int
}

func (f *fakeTemplateRepo) List(ctx context.Context) ([]models.ProposalTemplate, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) FindByID(ctx context.Context, id string) (*models.ProposalTemplate, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.template, nil
}

func (f *fakeTemplateRepo) FindActiveLatest(ctx context.Context) (*models.ProposalTemplate, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.template, nil
}

func (f *fakeTemplateRepo) Create(ctx context.Context, template *models.ProposalTemplate) error {
	return nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, template *models.ProposalTemplate) error {
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeTemplateRepo) IncrementDownloads(ctx context.Context, id string) error {
	f.incremented++
	return nil
}

type fakeTemplateStorage struct {
	files map[string][]byte
}

func (f *fakeTemplateStorage) Save(filename string, data []byte) (string, error) {
	return filename, nil
}

func (f *fakeTemplateStorage) Read(filename string) ([]byte, error) {
	data, ok := f.files[filename]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return data, nil
}

func (f *fakeTemplateStorage) Delete(filename string) error { return nil }

func newDownloadTestHandler(repo *fakeTemplateRepo, store *fakeTemplateStorage) *TemplateHandler {
	svc := service.NewTemplateService(repo, store, nil, zap.NewNop(), nil)
	return NewTemplateHandler(svc, nil, 0)
}

func serveDownload(t *testing.T, h *TemplateHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/templates/download", nil)
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
		h.Download(c)
		return rec
	}
	h.DownloadActive(c)
	return rec
}

func TestTemplateDownloadHeaders(t *testing.T) {
	repo := &fakeTemplateRepo{template: &models.ProposalTemplate{ID: "t1", Name: "Proposal Guide", Filename: "8a6f.pdf"}}
	store := &fakeTemplateStorage{files: map[string][]byte{"8a6f.pdf": []byte("%PDF-1.7 body")}}
	h := newDownloadTestHandler(repo, store)

	rec := serveDownload(t, h, "t1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Proposal Guide.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "13", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.7 body", rec.Body.String())
	assert.Equal(t, 1, repo.incremented)
}

func TestTemplateDownloadRowMissing(t *testing.T) {
	repo := &fakeTemplateRepo{findErr: sql.ErrNoRows}
	h := newDownloadTestHandler(repo, &fakeTemplateStorage{})

	rec := serveDownload(t, h, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "template not found")
}

func TestTemplateDownloadFileMissing(t *testing.T) {
	repo := &fakeTemplateRepo{template: &models.ProposalTemplate{ID: "t1", Name: "Guide", Filename: "gone.pdf"}}
	h := newDownloadTestHandler(repo, &fakeTemplateStorage{})

	rec := serveDownload(t, h, "t1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "template file not found")
	assert.Zero(t, repo.incremented)
}

func TestTemplateDownloadActiveLatest(t *testing.T) {
	repo := &fakeTemplateRepo{template: &models.ProposalTemplate{ID: "t2", Name: "Current", Filename: "current.docx"}}
	store := &fakeTemplateStorage{files: map[string][]byte{"current.docx": []byte("doc")}}
	h := newDownloadTestHandler(repo, store)

	rec := serveDownload(t, h, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", rec.Header().Get("Content-Type"))
	require.Equal(t, 1, repo.incremented)
}

// The download counter must be labeled with the resolved template id even
// when the route carries no id.
func TestTemplateHandlerDownloadActiveLabelsResolvedID(t *testing.T) {
	repo := &fakeTemplateRepo{template: &models.ProposalTemplate{ID: "t2", Name: "Current Guide", Filename: "current.pdf"}}
	store := &fakeTemplateStorage{files: map[string][]byte{"current.pdf": []byte("pdf bytes")}}
	svc := service.NewTemplateService(repo, store, nil, zap.NewNop(), nil)
	metrics := service.NewMetricsService()
	h := NewTemplateHandler(svc, metrics, 0)

	rec := serveDownload(t, h, "")
	require.Equal(t, http.StatusOK, rec.Code)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	assert.Contains(t, body, `template_downloads_total{template_id="t2"} 1`)
	assert.NotContains(t, body, `template_id=""`)
}
