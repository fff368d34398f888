package ports

import (
	"context"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

// BugStats holds the dashboard counters over the full bug set.
type BugStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Closed     int64 `json:"closed"`
	Critical   int64 `json:"critical"`
	High       int64 `json:"high"`
	Medium     int64 `json:"medium"`
	Low        int64 `json:"low"`
}

// DeveloperWorkload summarizes the bugs assigned to one developer.
type DeveloperWorkload struct {
	DeveloperID    uint   `json:"developer_id"`
	DeveloperName  string `json:"developer_name"`
	AssignedBugs   int64  `json:"assigned_bugs"`
	OpenBugs       int64  `json:"open_bugs"`
	InProgressBugs int64  `json:"in_progress_bugs"`
}

// DashboardRepository runs the read-only aggregate queries backing the
// dashboard endpoints.
type DashboardRepository interface {
	Stats(ctx context.Context) (*BugStats, error)
	Workload(ctx context.Context) ([]DeveloperWorkload, error)
	RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
}

// DashboardService serves the dashboard rollups.
type DashboardService interface {
	Stats(ctx context.Context) (*BugStats, error)
	Workload(ctx context.Context) ([]DeveloperWorkload, error)
	RecentActivity(ctx context.Context) ([]*domain.ActivityLog, error)
}

// StatsCache caches dashboard statistics between requests. Implementations
// must treat a miss and an unavailable cache identically (return ok=false)
// so the dashboard still works when the cache is down.
type StatsCache interface {
	Get(ctx context.Context) (*BugStats, bool)
	Set(ctx context.Context, stats *BugStats)
	Invalidate(ctx context.Context)
}
