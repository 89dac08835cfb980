package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/joystick-informer/backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository persists accounts via GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new account
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	record := userRecord{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = record.CreatedAt
	return nil
}

// GetByUsername looks up an account by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &domain.User{
		ID:           record.ID,
		Username:     record.Username,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}, nil
}
