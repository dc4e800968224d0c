package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOnboard           = "onboard"
	StatusContacted         = "contacted"
	StatusStandby           = "standby"
	StatusUnderVerification = "under_verification"
	StatusVerified          = "verified"
)

var OrganizationStatuses = []string{
	StatusOnboard,
	StatusContacted,
	StatusStandby,
	StatusUnderVerification,
	StatusVerified,
}

type Organization struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Head              string    `gorm:"size:150" json:"head"`
	AmbassadorName    string    `gorm:"size:150" json:"ambassador_name"`
	AmbassadorContact string    `gorm:"size:100" json:"ambassador_contact"`
	Contact           string    `gorm:"size:100" json:"contact"`
	Email             string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Status            string    `gorm:"size:30;not null;default:onboard;index" json:"status"`
	LogoURL           *string   `gorm:"type:text" json:"logo_url,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusOnboard
	}
	return nil
}

// IsValidStatus reports whether s is one of the organization pipeline statuses.
func IsValidStatus(s string) bool {
	for _, status := range OrganizationStatuses {
		if status == s {
			return true
		}
	}
	return false
}
