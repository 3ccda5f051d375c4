// services/store.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
)

// Store is the gorm-backed record storage used by the scheduling engine,
// the webhook responder and the daily digest.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := s.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.ErrUnknownClass
		}
		return nil, err
	}
	return &class, nil
}

func (s *Store) ListByGuardian(ctx context.Context, phone string) ([]models.Class, error) {
	var classes []models.Class
	err := s.db.WithContext(ctx).Where("guardian_phone = ?", phone).
		Order("created_at").Find(&classes).Error
	return classes, err
}

func (s *Store) ListByDay(ctx context.Context, dayOfWeek string) ([]models.Class, error) {
	var classes []models.Class
	err := s.db.WithContext(ctx).Where("day_of_week = ? AND is_active = true", dayOfWeek).
		Order("start_time").Find(&classes).Error
	return classes, err
}

func (s *Store) All(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	err := s.db.WithContext(ctx).Find(&classes).Error
	return classes, err
}
