package friends

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugh/birthday-reminder/internal/api/query"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("friend not found")

// ListConfig is the list policy for GET /friends.
var ListConfig = query.Config{
	DefaultSort: "-id",
	MaxLimit:    30,
	Filters:     []string{"name", "source"},
	Search:      []string{"name"},
	Sortable:    []string{"id", "name", "birthdate", "created_at"},
}

// Service reads and writes friends on behalf of their owner. Every operation
// is scoped to ownerID; rows of other users behave as missing.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Input struct {
	Name      string
	Source    *models.NotificationSource
	Birthdate *time.Time
}

// List returns the owner's friends for params, and the total number of
// matching rows when params.Count is set (otherwise -1).
func (s *Service) List(ctx context.Context, ownerID uint, params query.Params) ([]models.Friend, int64, error) {
	params = params.Where("user_id", ownerID)
	db := s.db.WithContext(ctx).Model(&models.Friend{})

	total := int64(-1)
	if params.Count {
		if err := params.Filter(db).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("counting friends: %w", err)
		}
	}

	friends := make([]models.Friend, 0)
	if err := params.Apply(s.db.WithContext(ctx)).Find(&friends).Error; err != nil {
		return nil, 0, fmt.Errorf("listing friends: %w", err)
	}

	return friends, total, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uint) (*models.Friend, error) {
	var friend models.Friend
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &friend, nil
}

// Create stores a friend for ownerID. The owner never comes from the input.
func (s *Service) Create(ctx context.Context, ownerID uint, input Input) (*models.Friend, error) {
	friend := models.Friend{
		Name:      input.Name,
		Source:    input.Source,
		Birthdate: input.Birthdate,
		UserID:    ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&friend).Error; err != nil {
		return nil, fmt.Errorf("creating friend: %w", err)
	}
	return &friend, nil
}

// Update replaces name, source and birthdate of an owned friend.
func (s *Service) Update(ctx context.Context, ownerID, id uint, input Input) (*models.Friend, error) {
	friend, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	friend.Name = input.Name
	friend.Source = input.Source
	friend.Birthdate = input.Birthdate

	if err := s.db.WithContext(ctx).
		Model(friend).
		Select("name", "source", "birthdate", "updated_at").
		Updates(friend).Error; err != nil {
		return nil, fmt.Errorf("updating friend: %w", err)
	}

	return s.Get(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Friend{})
	if result.Error != nil {
		return fmt.Errorf("deleting friend: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
