package repository

import (
	"context"
	"strings"

	"anoa.com/langanalytics/internal/entity"
	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin, cred *entity.Credential) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	FindAll(ctx context.Context, orgID *uuid.UUID) ([]*entity.Admin, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Admin, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.Admin, error)
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, admin *entity.Admin, prevEmail string, credFields map[string]interface{}) error
	Delete(ctx context.Context, admin *entity.Admin) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin, cred *entity.Credential) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization").Create(admin).Error; err != nil {
			return err
		}
		return tx.Create(cred).Error
	})
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.db.WithContext(ctx).Preload("Organization").First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindAll preloads the parent organization so callers can show its name.
func (r *adminRepository) FindAll(ctx context.Context, orgID *uuid.UUID) ([]*entity.Admin, error) {
	query := r.db.WithContext(ctx).Preload("Organization").Order("created_at ASC")
	if orgID != nil {
		query = query.Where("org_id = ?", *orgID)
	}

	var admins []*entity.Admin
	if err := query.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Admin, error) {
	var admins []*entity.Admin
	if len(ids) == 0 {
		return admins, nil
	}
	if err := r.db.WithContext(ctx).Preload("Organization").Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Admin, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var admins []*entity.Admin
	if err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(role) LIKE ? OR LOWER(language) LIKE ?", pattern, pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Admin{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *entity.Admin, prevEmail string, credFields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization").Save(admin).Error; err != nil {
			return err
		}
		return credentialRepo.MirrorUpdate(tx, prevEmail, credFields)
	})
}

// Delete always removes the admin's credential together with the admin row.
func (r *adminRepository) Delete(ctx context.Context, admin *entity.Admin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := credentialRepo.DeleteByEmail(tx, admin.Email); err != nil {
			return err
		}
		return tx.Delete(&entity.Admin{}, "id = ?", admin.ID).Error
	})
}
