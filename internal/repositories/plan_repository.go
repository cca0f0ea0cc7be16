package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type IPlanRepository interface {
	SavePlan(ctx context.Context, plan *db_models.TravelPlan) error
	GetPlanByID(ctx context.Context, planID string) (*db_models.TravelPlan, error)
	ListRecentPlans(ctx context.Context, limit int) ([]db_models.TravelPlan, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p PlanRepository) SavePlan(ctx context.Context, plan *db_models.TravelPlan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

// GetPlanByID returns nil without error when no plan has the id.
func (p PlanRepository) GetPlanByID(ctx context.Context, planID string) (*db_models.TravelPlan, error) {

	var plan db_models.TravelPlan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) ListRecentPlans(ctx context.Context, limit int) ([]db_models.TravelPlan, error) {

	var plans []db_models.TravelPlan
	err := p.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}
