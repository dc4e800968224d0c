package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var Languages = []string{"Japanese", "Mandarin", "German", "Spanish", "French", "English"}

type Admin struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string        `gorm:"size:150;not null" json:"name"`
	Contact      string        `gorm:"size:100" json:"contact"`
	Role         string        `gorm:"size:100" json:"role"`
	Language     string        `gorm:"size:30;not null" json:"language"`
	Email        string        `gorm:"size:100;uniqueIndex;not null" json:"email"`
	OrgID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"org_id"`
	Organization *Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func IsValidLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
