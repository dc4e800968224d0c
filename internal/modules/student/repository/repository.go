package repository

import (
	"context"
	"time"

	"anoa.com/langanalytics/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentFilter struct {
	OrgID    *uuid.UUID
	Language string
}

type StudentRepository interface {
	FindAll(ctx context.Context, filter StudentFilter) ([]*entity.Student, error)
	FindCreatedSince(ctx context.Context, since time.Time, filter StudentFilter) ([]*entity.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// filtered orders by (created_at, id), which analytics relies on for tie-breaks.
func (r *studentRepository) filtered(ctx context.Context, filter StudentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Student{}).Order("created_at ASC, id ASC")
	if filter.OrgID != nil {
		query = query.Where("org_id = ?", *filter.OrgID)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	return query
}

func (r *studentRepository) FindAll(ctx context.Context, filter StudentFilter) ([]*entity.Student, error) {
	var students []*entity.Student
	if err := r.filtered(ctx, filter).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) FindCreatedSince(ctx context.Context, since time.Time, filter StudentFilter) ([]*entity.Student, error) {
	var students []*entity.Student
	if err := r.filtered(ctx, filter).Where("created_at >= ?", since).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
