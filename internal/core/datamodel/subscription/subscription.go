package subscription

import "time"

type Subscription struct {
	ID           int64      `gorm:"primaryKey"`
	CompanyID    int64      `gorm:"column:company_id;not null;index"`
	PlanName     string     `gorm:"column:plan_name;not null"`
	PlanTier     string     `gorm:"column:plan_tier;not null"`
	Status       string     `gorm:"column:status;default:active"`
	BillingCycle string     `gorm:"column:billing_cycle;default:monthly"`
	Price        int64      `gorm:"column:price;not null"`
	Currency     string     `gorm:"column:currency;default:USD"`
	StartsAt     time.Time  `gorm:"column:starts_at"`
	EndsAt       *time.Time `gorm:"column:ends_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type SubscriptionPlan struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Tier         string    `gorm:"column:tier;not null"`
	BillingCycle string    `gorm:"column:billing_cycle;default:monthly"`
	Price        int64     `gorm:"column:price;not null"`
	Currency     string    `gorm:"column:currency;default:USD"`
	Features     string    `gorm:"column:features"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
