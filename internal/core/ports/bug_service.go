package ports

import (
	"context"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

// Actor identifies the authenticated user performing an operation, as
// resolved from the bearer token by the auth middleware.
type Actor struct {
	ID       uint
	Username string
	Role     domain.Role
}

// CreateBugInput carries all data needed to open a new bug.
type CreateBugInput struct {
	Title       string
	Description string
	Priority    string // empty = medium
	AssignedTo  *uint  // optional initial assignee, must be a developer
}

// UpdateBugInput is the partial-update structure for the general update
// operation. Nil pointers mean "field not supplied". AssignedTo is only
// meaningful when AssignedToSet is true, so that an explicit null (clear
// assignment) is distinguishable from an absent field.
type UpdateBugInput struct {
	Title         *string
	Description   *string
	Priority      *string
	Status        *string
	AssignedTo    *uint
	AssignedToSet bool
}

// BugService implements the bug lifecycle operations.
type BugService interface {
	Create(ctx context.Context, actor Actor, input CreateBugInput) (*domain.Bug, error)
	Get(ctx context.Context, id uint) (*domain.Bug, error)
	List(ctx context.Context, filter ListBugsFilter) ([]*domain.Bug, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateBugInput) (*domain.Bug, error)
	UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*domain.Bug, error)
	Assign(ctx context.Context, actor Actor, id uint, assigneeID *uint) (*domain.Bug, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}
