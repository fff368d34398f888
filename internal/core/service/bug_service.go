package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 10
)

// BugService implements the bug lifecycle: creation, reads, partial
// updates, status transitions, assignment, and deletion. Every mutation
// passes the authorization policy before touching the repository and
// records exactly one activity entry alongside the write.
type BugService struct {
	bugs   ports.BugRepository
	users  ports.UserRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

func NewBugService(bugs ports.BugRepository, users ports.UserRepository, cache ports.StatsCache, logger zerolog.Logger) *BugService {
	return &BugService{bugs: bugs, users: users, cache: cache, logger: logger}
}

// Create opens a new bug with status open and the actor as creator. An
// initial assignee, when supplied, is validated the same way the dedicated
// assign operation validates its target: the user must exist and be a
// developer.
func (s *BugService) Create(ctx context.Context, actor ports.Actor, input ports.CreateBugInput) (*domain.Bug, error) {
	if !domain.CanCreateBug(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if len(input.Title) < minTitleLen {
		return nil, domain.Validation("title must be at least 5 characters")
	}
	if len(input.Description) < minDescriptionLen {
		return nil, domain.Validation("description must be at least 10 characters")
	}

	priority := domain.PriorityMedium
	if input.Priority != "" {
		priority = domain.BugPriority(input.Priority)
		if !priority.IsValid() {
			return nil, domain.Validation("priority must be one of: low, medium, high, critical")
		}
	}

	if input.AssignedTo != nil {
		if _, err := s.requireDeveloper(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	bug := &domain.Bug{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      domain.StatusOpen,
		CreatedBy:   actor.ID,
		AssignedTo:  input.AssignedTo,
	}

	if err := s.bugs.Create(ctx, bug, domain.NewActivity("created", bug, actor.ID)); err != nil {
		s.logger.Error().Err(err).Msg("failed to create bug")
		return nil, err
	}

	s.afterMutation(ctx)
	s.logger.Info().Uint("bug_id", bug.ID).Str("actor", actor.Username).Msg("bug created")
	return bug, nil
}

// Get returns a single bug by id.
func (s *BugService) Get(ctx context.Context, id uint) (*domain.Bug, error) {
	return s.bugs.FindByID(ctx, id)
}

// List returns bugs matching the filter, most recently updated first.
func (s *BugService) List(ctx context.Context, filter ports.ListBugsFilter) ([]*domain.Bug, error) {
	return s.bugs.List(ctx, filter)
}

// Update applies a partial update. Testers may only touch bugs they
// created. A supplied assignee change is applied only when the actor is an
// admin and is silently dropped otherwise; that asymmetry with the assign
// operation is intentional. A status change to closed passes the
// close-gate, whichever endpoint carries it.
func (s *BugService) Update(ctx context.Context, actor ports.Actor, id uint, input ports.UpdateBugInput) (*domain.Bug, error) {
	bug, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanEditBug(actor.Role, bug.CreatedBy == actor.ID) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		if len(*input.Title) < minTitleLen {
			return nil, domain.Validation("title must be at least 5 characters")
		}
		bug.Title = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) < minDescriptionLen {
			return nil, domain.Validation("description must be at least 10 characters")
		}
		bug.Description = *input.Description
	}
	if input.Priority != nil {
		priority := domain.BugPriority(*input.Priority)
		if !priority.IsValid() {
			return nil, domain.Validation("priority must be one of: low, medium, high, critical")
		}
		bug.Priority = priority
	}
	if input.Status != nil {
		status, err := s.checkStatusChange(actor, bug, *input.Status)
		if err != nil {
			return nil, err
		}
		bug.Status = status
	}
	if input.AssignedToSet && domain.CanSetAssignee(actor.Role) {
		if input.AssignedTo != nil {
			if _, err := s.requireDeveloper(ctx, *input.AssignedTo); err != nil {
				return nil, err
			}
		}
		bug.AssignedTo = input.AssignedTo
	}

	if err := s.bugs.Update(ctx, bug, domain.NewActivity("updated", bug, actor.ID)); err != nil {
		s.logger.Error().Err(err).Uint("bug_id", id).Msg("failed to update bug")
		return nil, err
	}

	s.afterMutation(ctx)
	s.logger.Info().Uint("bug_id", bug.ID).Str("actor", actor.Username).Msg("bug updated")
	return bug, nil
}

// UpdateStatus applies the dedicated status transition. All transitions
// are unconstrained except closing, which passes the close-gate.
func (s *BugService) UpdateStatus(ctx context.Context, actor ports.Actor, id uint, status string) (*domain.Bug, error) {
	bug, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.checkStatusChange(actor, bug, status)
	if err != nil {
		return nil, err
	}
	bug.Status = next

	entry := domain.NewActivity(fmt.Sprintf("changed status to %s", next), bug, actor.ID)
	if err := s.bugs.Update(ctx, bug, entry); err != nil {
		s.logger.Error().Err(err).Uint("bug_id", id).Msg("failed to update bug status")
		return nil, err
	}

	s.afterMutation(ctx)
	s.logger.Info().Uint("bug_id", bug.ID).Str("status", string(next)).Str("actor", actor.Username).Msg("bug status changed")
	return bug, nil
}

// Assign sets or clears the bug's assignee. A non-nil target must exist
// and have role developer. Route-level RBAC restricts this to admins; the
// policy is re-checked here so the service is safe to call directly.
func (s *BugService) Assign(ctx context.Context, actor ports.Actor, id uint, assigneeID *uint) (*domain.Bug, error) {
	if !domain.CanSetAssignee(actor.Role) {
		return nil, domain.ErrForbidden
	}

	bug, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	action := "unassigned"
	if assigneeID != nil {
		developer, err := s.requireDeveloper(ctx, *assigneeID)
		if err != nil {
			return nil, err
		}
		action = fmt.Sprintf("assigned to %s", developer.Username)
	}
	bug.AssignedTo = assigneeID

	if err := s.bugs.Update(ctx, bug, domain.NewActivity(action, bug, actor.ID)); err != nil {
		s.logger.Error().Err(err).Uint("bug_id", id).Msg("failed to assign bug")
		return nil, err
	}

	s.afterMutation(ctx)
	s.logger.Info().Uint("bug_id", bug.ID).Str("action", action).Str("actor", actor.Username).Msg("bug assignment changed")
	return bug, nil
}

// Delete removes the bug. The activity entry is written in the same
// transaction before the row goes away, so the log keeps the title
// snapshot of the deleted bug.
func (s *BugService) Delete(ctx context.Context, actor ports.Actor, id uint) error {
	if !domain.CanDeleteBug(actor.Role) {
		return domain.ErrForbidden
	}

	bug, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bugs.Delete(ctx, bug, domain.NewActivity("deleted", bug, actor.ID)); err != nil {
		s.logger.Error().Err(err).Uint("bug_id", id).Msg("failed to delete bug")
		return err
	}

	s.afterMutation(ctx)
	s.logger.Info().Uint("bug_id", id).Str("actor", actor.Username).Msg("bug deleted")
	return nil
}

// checkStatusChange validates the target status and applies the close-gate
// when the target is closed.
func (s *BugService) checkStatusChange(actor ports.Actor, bug *domain.Bug, status string) (domain.BugStatus, error) {
	next := domain.BugStatus(status)
	if !next.IsValid() {
		return "", domain.Validation("status must be one of: open, in_progress, closed")
	}
	if next == domain.StatusClosed {
		isAssignee := bug.AssignedTo != nil && *bug.AssignedTo == actor.ID
		if !domain.CanCloseBug(actor.Role, isAssignee) {
			return "", domain.ErrForbidden
		}
	}
	return next, nil
}

// requireDeveloper resolves an assignment target and rejects it unless the
// user exists with role developer.
func (s *BugService) requireDeveloper(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Validation("assignee must be an existing developer")
	}
	if user.Role != domain.RoleDeveloper {
		return nil, domain.Validation("assignee must be an existing developer")
	}
	return user, nil
}

// afterMutation drops the cached dashboard stats so the next read
// reflects the change.
func (s *BugService) afterMutation(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
