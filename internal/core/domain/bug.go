package domain

import "time"

// BugStatus represents the lifecycle state of a bug.
type BugStatus string

const (
	StatusOpen       BugStatus = "open"
	StatusInProgress BugStatus = "in_progress"
	StatusClosed     BugStatus = "closed"
)

// IsValid reports whether s is one of the known statuses.
func (s BugStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// BugPriority represents the urgency of a bug.
type BugPriority string

const (
	PriorityLow      BugPriority = "low"
	PriorityMedium   BugPriority = "medium"
	PriorityHigh     BugPriority = "high"
	PriorityCritical BugPriority = "critical"
)

// IsValid reports whether p is one of the known priorities.
func (p BugPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Bug is the core tracked record. AssignedTo is nil while the bug is
// unassigned; when set it must reference a user with role developer.
type Bug struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:200;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Priority    BugPriority `json:"priority" gorm:"size:20;not null;default:medium"`
	Status      BugStatus   `json:"status" gorm:"size:20;not null;default:open"`
	CreatedBy   uint        `json:"created_by" gorm:"not null"`
	Creator     *User       `json:"-" gorm:"foreignKey:CreatedBy"`
	AssignedTo  *uint       `json:"assigned_to"`
	Assignee    *User       `json:"-" gorm:"foreignKey:AssignedTo"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
