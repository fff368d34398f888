package ports

import (
	"context"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

// ListBugsFilter carries the query parameters for listing bugs. Zero
// values mean "no filter"; Unassigned selects bugs with no assignee and
// takes precedence over AssignedTo.
type ListBugsFilter struct {
	Status     domain.BugStatus
	Priority   domain.BugPriority
	AssignedTo *uint
	Unassigned bool
	Search     string // case-insensitive substring over title OR description
}

// BugRepository defines persistence operations for bugs. Every mutation
// takes the activity entry to record and must persist both in the same
// transaction, so a failed write leaves no orphan log entry.
type BugRepository interface {
	Create(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error
	FindByID(ctx context.Context, id uint) (*domain.Bug, error)
	// List returns bugs matching filter, most recently updated first.
	List(ctx context.Context, filter ListBugsFilter) ([]*domain.Bug, error)
	Update(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error
	// Delete writes the entry before removing the row; the entry's title
	// snapshot must be taken while the bug still exists.
	Delete(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error
}
