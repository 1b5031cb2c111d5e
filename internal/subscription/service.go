package subscription

import (
	"fmt"
	"time"
)

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPlans() ([]Plan, error) {
	plans, err := s.repo.ListActivePlans()
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// Subscribe replaces the company's active subscription. A company has at most
// one active subscription; the previous one is cancelled first.
func (s *Service) Subscribe(dto CreateSubscriptionDTO) (*Subscription, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Currency == "" {
		dto.Currency = "USD"
	}

	if err := s.repo.CancelActiveByCompany(dto.CompanyID); err != nil {
		return nil, fmt.Errorf("cancel previous subscription: %w", err)
	}

	sub, err := s.repo.CreateSubscription(dto, time.Now())
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) CurrentForCompany(companyID int64) (*Subscription, error) {
	return s.repo.GetActiveByCompany(companyID)
}

// TierForCompany feeds the navigation user context. No subscription means no
// tier, which the navigation layer treats as the implicit free plan.
func (s *Service) TierForCompany(companyID int64) (string, error) {
	sub, err := s.repo.GetActiveByCompany(companyID)
	if err != nil {
		return "", err
	}
	return sub.PlanTier, nil
}
