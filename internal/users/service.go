package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugh/birthday-reminder/internal/auth"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoChanges    = errors.New("no changes detected")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProfileInput is a partial update; nil fields are left untouched.
type ProfileInput struct {
	Name      *string
	Cellphone *string
	Source    *models.NotificationSource
}

func (in ProfileInput) updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Cellphone != nil {
		updates["cellphone"] = *in.Cellphone
	}
	if in.Source != nil {
		updates["source"] = *in.Source
	}
	return updates
}

func (s *Service) UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*models.User, error) {
	updates := input.updates()
	if len(updates) == 0 {
		return nil, ErrNoChanges
	}
	return s.update(ctx, id, updates)
}

func (s *Service) UpdatePassword(ctx context.Context, id uint, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return s.update(ctx, id, map[string]interface{}{"password": hash})
}

func (s *Service) update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	db := s.db.WithContext(ctx)

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("updating user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
