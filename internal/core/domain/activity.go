package domain

import "time"

// ActivityLog is an append-only audit entry for a bug-affecting action.
// BugID and BugTitle are denormalized snapshots taken at logging time so
// the entry survives deletion of the bug itself; BugID deliberately has
// no foreign key.
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"size:100;not null"`
	BugID     uint      `json:"bug_id" gorm:"not null"`
	BugTitle  string    `json:"bug_title" gorm:"size:200;not null"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivity builds the log entry for an action against a bug, snapshotting
// the bug's current id and title.
func NewActivity(action string, bug *Bug, actorID uint) *ActivityLog {
	return &ActivityLog{
		Action:    action,
		BugID:     bug.ID,
		BugTitle:  bug.Title,
		UserID:    actorID,
		Timestamp: time.Now().UTC(),
	}
}
