package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// recentActivityLimit caps the dashboard activity feed.
const recentActivityLimit = 10

// DashboardService serves read-only rollups over the bug table. Stats are
// served from the cache when present; the cache is best-effort and a cold
// or unavailable cache falls through to the repository.
type DashboardService struct {
	repo   ports.DashboardRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, cache ports.StatsCache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.BugStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute bug stats")
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

func (s *DashboardService) Workload(ctx context.Context) ([]ports.DeveloperWorkload, error) {
	return s.repo.Workload(ctx)
}

func (s *DashboardService) RecentActivity(ctx context.Context) ([]*domain.ActivityLog, error) {
	return s.repo.RecentActivity(ctx, recentActivityLimit)
}
