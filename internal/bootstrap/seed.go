package bootstrap

import (
	"errors"
	"fmt"

	"anoa.com/langanalytics/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Organization{},
		&entity.Admin{},
		&entity.Student{},
		&entity.Credential{},
		&entity.SuperAdmin{},
	)
}

// SeedSuperAdmin creates the login account used in development. Existing rows are left untouched.
func SeedSuperAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return errors.New("seed super admin: email and password are required")
	}

	var count int64
	if err := db.Model(&entity.SuperAdmin{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Info("super admin already exists, skipping seed", zap.String("email", email))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	superAdmin := entity.SuperAdmin{
		Name:     "Super Admin",
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Create(&superAdmin).Error; err != nil {
		return err
	}

	zap.L().Info("super admin seeded", zap.String("email", email))
	return nil
}
