package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type statsRepository interface {
	ProjectCountsByStatus(ctx context.Context) ([]models.StatusCount, error)
	CountPartners(ctx context.Context) (int, error)
	CountActiveTeamMembers(ctx context.Context) (int, error)
}

type proposalCounter interface {
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// StatsCache is the minimal cache contract the stats service needs.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const dashboardStatsCacheKey = "stats:dashboard"

// StatsService aggregates dashboard counters. All counting happens in SQL;
// results are optionally cached in Redis for a short TTL.
type StatsService struct {
	stats     statsRepository
	proposals proposalCounter
	cache     StatsCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewStatsService creates a new stats service. cache and metrics may be nil.
func NewStatsService(stats statsRepository, proposals proposalCounter, cache StatsCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{stats: stats, proposals: proposals, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// Dashboard returns the admin dashboard aggregates.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard stats cache read failed", zap.Error(err))
		}
	}

	proposalCounts, err := s.proposals.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count proposals")
	}
	projectCounts, err := s.stats.ProjectCountsByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count projects")
	}
	partners, err := s.stats.CountPartners(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count partners")
	}
	teamMembers, err := s.stats.CountActiveTeamMembers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count team members")
	}

	stats := &models.DashboardStats{
		Partners:    models.CountStat{Total: partners},
		TeamMembers: models.CountStat{Total: teamMembers},
	}
	for _, c := range proposalCounts {
		stats.Proposals.Total += c.Count
		switch c.Status {
		case models.ProposalStatusPending:
			stats.Proposals.Pending = c.Count
		case models.ProposalStatusApproved:
			stats.Proposals.Approved = c.Count
		}
	}
	for _, c := range projectCounts {
		stats.Projects.Total += c.Count
		if c.Status == models.ProjectStatusActive {
			stats.Projects.Active = c.Count
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}
	return stats, nil
}

// Invalidate drops the cached dashboard aggregates.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardStatsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats cache", zap.Error(err))
	}
}
