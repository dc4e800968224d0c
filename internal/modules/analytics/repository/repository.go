package repository

import (
	"context"
	"time"

	"anoa.com/langanalytics/internal/entity"
	"gorm.io/gorm"
)

// AnalyticsRepository only fetches rows. All aggregation happens in the service.
// Student rows come from the student repository.
type AnalyticsRepository interface {
	OrganizationsCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Organization, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// OrganizationsCreatedBetween returns rows in [from, to). A zero to leaves the range open.
func (r *analyticsRepository) OrganizationsCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Organization, error) {
	query := r.db.WithContext(ctx).Where("created_at >= ?", from)
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	var orgs []*entity.Organization
	if err := query.Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}
