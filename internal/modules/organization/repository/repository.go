package repository

import (
	"context"
	"strings"

	"anoa.com/langanalytics/internal/entity"
	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization, cred *entity.Credential) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	FindByName(ctx context.Context, name string) (*entity.Organization, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Organization, error)
	FindAll(ctx context.Context) ([]*entity.Organization, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.Organization, error)
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, org *entity.Organization, prevEmail string, credFields map[string]interface{}) error
	UpdateLogo(ctx context.Context, id uuid.UUID, logoURL string) error
	Delete(ctx context.Context, org *entity.Organization) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *entity.Organization, cred *entity.Credential) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		return tx.Create(cred).Error
	})
}

func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	var org entity.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByName(ctx context.Context, name string) (*entity.Organization, error) {
	var org entity.Organization
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orgs []*entity.Organization
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) FindAll(ctx context.Context) ([]*entity.Organization, error) {
	var orgs []*entity.Organization
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Organization, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var orgs []*entity.Organization
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(head) LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return r.taken(ctx, "name = ?", name, excludeID)
}

func (r *organizationRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return r.taken(ctx, "email = ?", email, excludeID)
}

func (r *organizationRepository) taken(ctx context.Context, cond, value string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Organization{}).Where(cond, value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *entity.Organization, prevEmail string, credFields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(org).Error; err != nil {
			return err
		}
		return credentialRepo.MirrorUpdate(tx, prevEmail, credFields)
	})
}

func (r *organizationRepository) UpdateLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	return r.db.WithContext(ctx).Model(&entity.Organization{}).Where("id = ?", id).Update("logo_url", logoURL).Error
}

// Delete removes the organization's admins and every related credential in one transaction.
func (r *organizationRepository) Delete(ctx context.Context, org *entity.Organization) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var adminEmails []string
		if err := tx.Model(&entity.Admin{}).Where("org_id = ?", org.ID).Pluck("email", &adminEmails).Error; err != nil {
			return err
		}

		if err := credentialRepo.DeleteByEmail(tx, append(adminEmails, org.Email)...); err != nil {
			return err
		}
		if err := tx.Where("org_id = ?", org.ID).Delete(&entity.Admin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Organization{}, "id = ?", org.ID).Error
	})
}
