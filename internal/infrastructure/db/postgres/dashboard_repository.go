package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// DashboardRepository runs the aggregate queries behind the dashboard
// endpoints. Counts are computed with GROUP BY instead of loading the
// full bug table.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *DashboardRepository) Stats(ctx context.Context) (*ports.BugStats, error) {
	stats := &ports.BugStats{}

	if err := r.db.WithContext(ctx).Model(&domain.Bug{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byStatus []groupCount
	err := r.db.WithContext(ctx).Model(&domain.Bug{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		switch domain.BugStatus(row.Key) {
		case domain.StatusOpen:
			stats.Open = row.Count
		case domain.StatusInProgress:
			stats.InProgress = row.Count
		case domain.StatusClosed:
			stats.Closed = row.Count
		}
	}

	var byPriority []groupCount
	err = r.db.WithContext(ctx).Model(&domain.Bug{}).
		Select("priority AS key, COUNT(*) AS count").
		Group("priority").
		Scan(&byPriority).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byPriority {
		switch domain.BugPriority(row.Key) {
		case domain.PriorityCritical:
			stats.Critical = row.Count
		case domain.PriorityHigh:
			stats.High = row.Count
		case domain.PriorityMedium:
			stats.Medium = row.Count
		case domain.PriorityLow:
			stats.Low = row.Count
		}
	}

	return stats, nil
}

func (r *DashboardRepository) Workload(ctx context.Context) ([]ports.DeveloperWorkload, error) {
	var developers []domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleDeveloper).
		Order("id").
		Find(&developers).Error
	if err != nil {
		return nil, err
	}

	type assignedCount struct {
		AssignedTo uint
		Status     string
		Count      int64
	}
	var counts []assignedCount
	err = r.db.WithContext(ctx).Model(&domain.Bug{}).
		Select("assigned_to, status, COUNT(*) AS count").
		Where("assigned_to IS NOT NULL").
		Group("assigned_to, status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	workload := make([]ports.DeveloperWorkload, 0, len(developers))
	for _, dev := range developers {
		item := ports.DeveloperWorkload{
			DeveloperID:   dev.ID,
			DeveloperName: dev.Username,
		}
		for _, row := range counts {
			if row.AssignedTo != dev.ID {
				continue
			}
			item.AssignedBugs += row.Count
			switch domain.BugStatus(row.Status) {
			case domain.StatusOpen:
				item.OpenBugs = row.Count
			case domain.StatusInProgress:
				item.InProgressBugs = row.Count
			}
		}
		workload = append(workload, item)
	}
	return workload, nil
}

func (r *DashboardRepository) RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	var logs []*domain.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
