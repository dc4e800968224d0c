package repository

import (
	"context"

	"anoa.com/langanalytics/internal/entity"
	"gorm.io/gorm"
)

// CredentialRepository reads the shared credential table. Writes happen inside the
// owning entity's transaction, see MirrorUpdate and DeleteByEmail.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
	EmailTaken(ctx context.Context, email, ownEmail string) (bool, error)
	UsernameTaken(ctx context.Context, username, ownEmail string) (bool, error)
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var cred entity.Credential
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// EmailTaken ignores the row owned by ownEmail so updates do not collide with themselves.
func (r *credentialRepository) EmailTaken(ctx context.Context, email, ownEmail string) (bool, error) {
	return r.exists(ctx, "email = ?", email, ownEmail)
}

func (r *credentialRepository) UsernameTaken(ctx context.Context, username, ownEmail string) (bool, error) {
	return r.exists(ctx, "username = ?", username, ownEmail)
}

func (r *credentialRepository) exists(ctx context.Context, cond string, value, ownEmail string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Credential{}).Where(cond, value)
	if ownEmail != "" {
		query = query.Where("email <> ?", ownEmail)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MirrorUpdate copies changed login fields onto the credential row found by the previous email.
func MirrorUpdate(tx *gorm.DB, prevEmail string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.Model(&entity.Credential{}).Where("email = ?", prevEmail).Updates(fields).Error
}

func DeleteByEmail(tx *gorm.DB, emails ...string) error {
	if len(emails) == 0 {
		return nil
	}
	return tx.Where("email IN ?", emails).Delete(&entity.Credential{}).Error
}
