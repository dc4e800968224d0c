package repository

import (
	"context"

	"anoa.com/langanalytics/internal/entity"
	"gorm.io/gorm"
)

type SuperAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.SuperAdmin, error)
}

type superAdminRepository struct {
	db *gorm.DB
}

func NewSuperAdminRepository(db *gorm.DB) SuperAdminRepository {
	return &superAdminRepository{db: db}
}

func (r *superAdminRepository) FindByEmail(ctx context.Context, email string) (*entity.SuperAdmin, error) {
	var sa entity.SuperAdmin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sa).Error; err != nil {
		return nil, err
	}
	return &sa, nil
}
