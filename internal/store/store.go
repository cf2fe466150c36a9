package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lab-admin-backend/internal/model"
)

// Store defines the interface for all database operations on the labs collection.
type Store interface {
	DB() *gorm.DB
	ListLabs(ctx context.Context) ([]model.Lab, error)
	GetLab(ctx context.Context, id int64) (model.Lab, error)
	CreateLab(ctx context.Context, lab *model.Lab) error
	UpdateLab(ctx context.Context, id int64, update LabUpdate) error
	DeleteLab(ctx context.Context, id int64) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying GORM handle for association-heavy handlers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListLabs returns all labs ordered by building, then name.
func (s *gormStore) ListLabs(ctx context.Context) ([]model.Lab, error) {
	labs := make([]model.Lab, 0)
	if err := s.db.WithContext(ctx).
		Order("building ASC, name ASC").
		Find(&labs).Error; err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	return labs, nil
}

// GetLab fetches a single lab by ID.
func (s *gormStore) GetLab(ctx context.Context, id int64) (model.Lab, error) {
	var lab model.Lab
	if err := s.db.WithContext(ctx).First(&lab, id).Error; err != nil {
		return model.Lab{}, err
	}
	return lab, nil
}

// CreateLab inserts a new lab; the store assigns its ID.
func (s *gormStore) CreateLab(ctx context.Context, lab *model.Lab) error {
	if err := s.db.WithContext(ctx).Create(lab).Error; err != nil {
		return fmt.Errorf("failed to create lab: %w", err)
	}
	return nil
}

// UpdateLab applies a partial update to the lab with the given ID.
// Only the fields set in update are written; gorm.ErrRecordNotFound is
// returned when no row matches.
func (s *gormStore) UpdateLab(ctx context.Context, id int64, update LabUpdate) error {
	assignments := update.Assignments()
	if len(assignments) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).
		Model(&model.Lab{}).
		Where("id = ?", id).
		Updates(assignments)
	if res.Error != nil {
		return fmt.Errorf("failed to update lab %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLab removes the lab with the given ID.
func (s *gormStore) DeleteLab(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Lab{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lab %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
