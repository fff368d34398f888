package domain

import "time"

// Role determines which actions a user may perform.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleTester    Role = "tester"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleTester:
		return true
	}
	return false
}

// User models an authenticated actor in the system. Users are immutable
// after registration.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:256;not null"`
	Role         Role      `json:"role" gorm:"size:20;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
