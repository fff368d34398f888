package ports

import (
	"context"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

// AuthService implements registration, login, and user lookups.
type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListDevelopers(ctx context.Context) ([]*domain.User, error)
}
