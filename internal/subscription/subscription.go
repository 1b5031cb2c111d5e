package subscription

import (
	"errors"
	"time"
)

type Plan struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Tier         string   `json:"tier"`
	BillingCycle string   `json:"billing_cycle"`
	Price        int64    `json:"price"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

type Subscription struct {
	ID           int64      `json:"id"`
	CompanyID    int64      `json:"company_id"`
	PlanName     string     `json:"plan_name"`
	PlanTier     string     `json:"plan_tier"`
	Status       string     `json:"status"`
	BillingCycle string     `json:"billing_cycle"`
	Price        int64      `json:"price"`
	Currency     string     `json:"currency"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
}

type CreateSubscriptionDTO struct {
	CompanyID    int64  `json:"company_id"`
	PlanName     string `json:"plan_name"`
	PlanTier     string `json:"plan_tier"`
	BillingCycle string `json:"billing_cycle"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateSubscriptionDTO) Validate() error {
	if d.CompanyID <= 0 {
		return ValidationError{Msg: "company_id is required"}
	}
	if d.PlanName == "" {
		return ValidationError{Msg: "plan_name is required"}
	}
	switch d.PlanTier {
	case "starter", "professional", "enterprise":
	default:
		return ValidationError{Msg: "plan_tier must be one of starter, professional, enterprise"}
	}
	switch d.BillingCycle {
	case "monthly", "annual":
	default:
		return ValidationError{Msg: "billing_cycle must be monthly or annual"}
	}
	return nil
}

type ServiceAPI interface {
	ListPlans() ([]Plan, error)
	Subscribe(dto CreateSubscriptionDTO) (*Subscription, error)
	CurrentForCompany(companyID int64) (*Subscription, error)
	TierForCompany(companyID int64) (string, error)
}

type RepositoryAPI interface {
	ListActivePlans() ([]Plan, error)
	CreateSubscription(dto CreateSubscriptionDTO, startsAt time.Time) (*Subscription, error)
	GetActiveByCompany(companyID int64) (*Subscription, error)
	CancelActiveByCompany(companyID int64) error
}

var ErrNoActiveSubscription = errors.New("company has no active subscription")
