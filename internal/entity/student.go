package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student rows are written by the learning app; this service only reads them.
type Student struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:150" json:"name"`
	Email           string    `gorm:"size:100;index" json:"email"`
	Language        string    `gorm:"size:30;index" json:"language"`
	OrgID           uuid.UUID `gorm:"type:uuid;index" json:"org_id"`
	OverallMark     float64   `json:"overall_mark"`
	AverageMark     float64   `json:"average_mark"`
	RecentTestMark  float64   `json:"recent_test_mark"`
	FluencyMark     float64   `json:"fluency_mark"`
	VocabMark       float64   `json:"vocab_mark"`
	SentenceMastery float64   `json:"sentence_mastery"`
	Pronunciation   float64   `json:"pronunciation"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
