package postgres

import (
	"encoding/json"
	"errors"
	"time"

	subscriptionModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/subscription"
	"github.com/frahmantamala/cash-pro/internal/subscription"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActivePlans() ([]subscription.Plan, error) {
	var rows []subscriptionModel.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plans := make([]subscription.Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, subscription.Plan{
			ID:           row.ID,
			Name:         row.Name,
			Tier:         row.Tier,
			BillingCycle: row.BillingCycle,
			Price:        row.Price,
			Currency:     row.Currency,
			Features:     decodeFeatures(row.Features),
		})
	}
	return plans, nil
}

func (r *Repository) CreateSubscription(dto subscription.CreateSubscriptionDTO, startsAt time.Time) (*subscription.Subscription, error) {
	row := subscriptionModel.Subscription{
		CompanyID:    dto.CompanyID,
		PlanName:     dto.PlanName,
		PlanTier:     dto.PlanTier,
		Status:       "active",
		BillingCycle: dto.BillingCycle,
		Price:        dto.Price,
		Currency:     dto.Currency,
		StartsAt:     startsAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *Repository) GetActiveByCompany(companyID int64) (*subscription.Subscription, error) {
	var row subscriptionModel.Subscription
	err := r.db.Where("company_id = ? AND status = ?", companyID, "active").
		Order("starts_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrNoActiveSubscription
		}
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *Repository) CancelActiveByCompany(companyID int64) error {
	return r.db.Model(&subscriptionModel.Subscription{}).
		Where("company_id = ? AND status = ?", companyID, "active").
		Update("status", "cancelled").Error
}

func toDomain(row *subscriptionModel.Subscription) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           row.ID,
		CompanyID:    row.CompanyID,
		PlanName:     row.PlanName,
		PlanTier:     row.PlanTier,
		Status:       row.Status,
		BillingCycle: row.BillingCycle,
		Price:        row.Price,
		Currency:     row.Currency,
		StartsAt:     row.StartsAt,
		EndsAt:       row.EndsAt,
	}
}

func decodeFeatures(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		return []string{}
	}
	return features
}
