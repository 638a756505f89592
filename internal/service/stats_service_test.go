package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type mockStatsRepo struct {
	projectCounts []models.StatusCount
	partners      int
	teamMembers   int
}

func (m *mockStatsRepo) ProjectCountsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	return m.projectCounts, nil
}

func (m *mockStatsRepo) CountPartners(ctx context.Context) (int, error) {
	return m.partners, nil
}

func (m *mockStatsRepo) CountActiveTeamMembers(ctx context.Context) (int, error) {
	return m.teamMembers, nil
}

type mockProposalCounter struct {
	counts []models.StatusCount
	calls  int
}

func (m *mockProposalCounter) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	m.calls++
	return m.counts, nil
}

type mockStatsCache struct {
	entries map[string][]byte
	sets    int
}

func (m *mockStatsCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *mockStatsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	m.sets++
	return nil
}

func (m *mockStatsCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func TestStatsServiceDashboardAggregation(t *testing.T) {
	stats := &mockStatsRepo{
		projectCounts: []models.StatusCount{
			{Status: models.ProjectStatusPlanned, Count: 2},
			{Status: models.ProjectStatusActive, Count: 3},
			{Status: models.ProjectStatusCompleted, Count: 1},
		},
		partners:    7,
		teamMembers: 12,
	}
	proposals := &mockProposalCounter{counts: []models.StatusCount{
		{Status: models.ProposalStatusPending, Count: 4},
		{Status: models.ProposalStatusUnderReview, Count: 2},
		{Status: models.ProposalStatusApproved, Count: 5},
		{Status: models.ProposalStatusRejected, Count: 1},
	}}
	svc := NewStatsService(stats, proposals, nil, time.Minute, nil, zap.NewNop())

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, dashboard.Proposals.Total)
	assert.Equal(t, 4, dashboard.Proposals.Pending)
	assert.Equal(t, 5, dashboard.Proposals.Approved)
	assert.Equal(t, 6, dashboard.Projects.Total)
	assert.Equal(t, 3, dashboard.Projects.Active)
	assert.Equal(t, 7, dashboard.Partners.Total)
	assert.Equal(t, 12, dashboard.TeamMembers.Total)
}

func TestStatsServiceDashboardCaches(t *testing.T) {
	stats := &mockStatsRepo{partners: 1}
	proposals := &mockProposalCounter{counts: []models.StatusCount{{Status: models.ProposalStatusPending, Count: 1}}}
	cache := &mockStatsCache{}
	svc := NewStatsService(stats, proposals, cache, time.Minute, nil, zap.NewNop())

	first, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	second, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, proposals.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestStatsServiceInvalidate(t *testing.T) {
	stats := &mockStatsRepo{}
	proposals := &mockProposalCounter{}
	cache := &mockStatsCache{}
	svc := NewStatsService(stats, proposals, cache, time.Minute, nil, zap.NewNop())

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	svc.Invalidate(context.Background())

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, proposals.calls)
}

func TestStatsServiceDashboardRecordsCacheMetrics(t *testing.T) {
	stats := &mockStatsRepo{partners: 1}
	proposals := &mockProposalCounter{counts: []models.StatusCount{{Status: models.ProposalStatusPending, Count: 1}}}
	cache := &mockStatsCache{}
	metrics := NewMetricsService()
	svc := NewStatsService(stats, proposals, cache, time.Minute, metrics, zap.NewNop())

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheMisses))

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheMisses))
}
