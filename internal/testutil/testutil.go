package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"anoa.com/langanalytics/internal/bootstrap"
	"anoa.com/langanalytics/internal/entity"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func HashPassword(t *testing.T, plain string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

// CreateTestOrg inserts an organization together with its credential row.
func CreateTestOrg(t *testing.T, db *gorm.DB, name, email string) *entity.Organization {
	t.Helper()

	org := &entity.Organization{
		Name:              name,
		Head:              "Head of " + name,
		AmbassadorName:    "Ambassador",
		AmbassadorContact: "+100",
		Contact:           "+200",
		Email:             email,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}

	cred := &entity.Credential{
		Username: name,
		Email:    email,
		Password: HashPassword(t, "password123"),
		Role:     entity.RoleOrg,
	}
	if err := db.Create(cred).Error; err != nil {
		t.Fatalf("failed to create test credential: %v", err)
	}

	return org
}

func CreateTestOrgAt(t *testing.T, db *gorm.DB, name, status string, createdAt time.Time) *entity.Organization {
	t.Helper()

	org := &entity.Organization{
		Name:      name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

func CreateTestAdmin(t *testing.T, db *gorm.DB, org *entity.Organization, email string) *entity.Admin {
	t.Helper()

	admin := &entity.Admin{
		Name:     "Admin " + email,
		Contact:  "+300",
		Role:     "Coordinator",
		Language: "Japanese",
		Email:    email,
		OrgID:    org.ID,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}

	cred := &entity.Credential{
		Username: admin.Name,
		Email:    email,
		Password: HashPassword(t, "password123"),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(cred).Error; err != nil {
		t.Fatalf("failed to create test credential: %v", err)
	}

	return admin
}

func CreateTestStudent(t *testing.T, db *gorm.DB, student *entity.Student) *entity.Student {
	t.Helper()

	if student.Email == "" {
		student.Email = uuid.NewString()[:8] + "@student.test"
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to create test student: %v", err)
	}
	return student
}

func CreateTestSuperAdmin(t *testing.T, db *gorm.DB, email, password string) *entity.SuperAdmin {
	t.Helper()

	sa := &entity.SuperAdmin{
		Name:     "Root",
		Email:    email,
		Password: HashPassword(t, password),
	}
	if err := db.Create(sa).Error; err != nil {
		t.Fatalf("failed to create test super admin: %v", err)
	}
	return sa
}

func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
