package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// BugRepository persists bugs through GORM. Every mutation writes the bug
// and its activity entry in one transaction so a failed write cannot leave
// a mutation without its audit record, or vice versa.
type BugRepository struct {
	db *gorm.DB
}

func NewBugRepository(db *gorm.DB) *BugRepository {
	return &BugRepository{db: db}
}

func (r *BugRepository) Create(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bug).Error; err != nil {
			return err
		}
		// The entry was built before the insert assigned an id.
		entry.BugID = bug.ID
		return tx.Create(entry).Error
	})
}

func (r *BugRepository) FindByID(ctx context.Context, id uint) (*domain.Bug, error) {
	var bug domain.Bug
	if err := r.db.WithContext(ctx).First(&bug, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBugNotFound
		}
		return nil, err
	}
	return &bug, nil
}

func (r *BugRepository) List(ctx context.Context, filter ports.ListBugsFilter) ([]*domain.Bug, error) {
	query := r.db.WithContext(ctx).Model(&domain.Bug{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Unassigned {
		query = query.Where("assigned_to IS NULL")
	} else if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Search != "" {
		// LOWER() LIKE instead of ILIKE so sqlite-backed tests match
		// postgres behaviour.
		needle := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var bugs []*domain.Bug
	if err := query.Order("updated_at DESC").Find(&bugs).Error; err != nil {
		return nil, err
	}
	return bugs, nil
}

func (r *BugRepository) Update(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error {
	bug.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save with Select so a cleared assignee (nil) is written as NULL
		// rather than skipped as a zero value.
		err := tx.Model(bug).Select("title", "description", "priority", "status", "assigned_to", "updated_at").Updates(bug).Error
		if err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *BugRepository) Delete(ctx context.Context, bug *domain.Bug, entry *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Log first: the entry's snapshot must be taken while the row
		// still exists.
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Bug{}, bug.ID).Error
	})
}
