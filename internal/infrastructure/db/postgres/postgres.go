package postgres

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

const (
	maxConnectAttempts = 10
	connectRetryDelay  = 2 * time.Second
)

// Connect opens a Postgres connection and syncs the schema. The database
// may still be starting alongside the service, so the dial is retried a
// few times before giving up.
func Connect(dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		logger.Warn().Err(err).Int("attempt", attempt).Int("max", maxConnectAttempts).Msg("database connection failed, retrying")
		time.Sleep(connectRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxConnectAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate syncs the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Bug{},
		&domain.ActivityLog{},
	)
}

// seedUsers are created on first start against an empty users table so a
// fresh deployment is immediately usable. Development convenience only;
// disable via SEED_DATA=false.
var seedUsers = []struct {
	username string
	password string
	role     domain.Role
}{
	{"admin", "admin123", domain.RoleAdmin},
	{"developer1", "dev123", domain.RoleDeveloper},
	{"developer2", "dev123", domain.RoleDeveloper},
	{"tester1", "test123", domain.RoleTester},
}

// Seed populates sample users when the users table is empty.
func Seed(db *gorm.DB, logger zerolog.Logger) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := domain.User{
			Username:     s.username,
			PasswordHash: string(hash),
			Role:         s.role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		logger.Info().Str("username", s.username).Str("role", string(s.role)).Msg("seeded user")
	}
	return nil
}
