package subscription

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestSubscription(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Subscription Module Suite")
}

type mockSubscriptionRepository struct {
	plans  []Plan
	active map[int64]*Subscription
	nextID int64

	cancelCalls []int64
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{
		plans: []Plan{
			{ID: 1, Name: "Starter", Tier: "starter", BillingCycle: "monthly", Price: 2900, Currency: "USD"},
			{ID: 2, Name: "Professional", Tier: "professional", BillingCycle: "monthly", Price: 9900, Currency: "USD"},
		},
		active: map[int64]*Subscription{},
		nextID: 1,
	}
}

func (m *mockSubscriptionRepository) ListActivePlans() ([]Plan, error) {
	return m.plans, nil
}

func (m *mockSubscriptionRepository) CreateSubscription(dto CreateSubscriptionDTO, startsAt time.Time) (*Subscription, error) {
	sub := &Subscription{
		ID:           m.nextID,
		CompanyID:    dto.CompanyID,
		PlanName:     dto.PlanName,
		PlanTier:     dto.PlanTier,
		Status:       "active",
		BillingCycle: dto.BillingCycle,
		Price:        dto.Price,
		Currency:     dto.Currency,
		StartsAt:     startsAt,
	}
	m.nextID++
	m.active[dto.CompanyID] = sub
	return sub, nil
}

func (m *mockSubscriptionRepository) GetActiveByCompany(companyID int64) (*Subscription, error) {
	sub, ok := m.active[companyID]
	if !ok {
		return nil, ErrNoActiveSubscription
	}
	return sub, nil
}

func (m *mockSubscriptionRepository) CancelActiveByCompany(companyID int64) error {
	m.cancelCalls = append(m.cancelCalls, companyID)
	delete(m.active, companyID)
	return nil
}

var _ = ginkgo.Describe("SubscriptionService", func() {
	var (
		service  *Service
		mockRepo *mockSubscriptionRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockSubscriptionRepository()
		service = NewService(mockRepo)
	})

	ginkgo.Describe("Subscribe", func() {
		ginkgo.It("cancels the previous subscription before creating the new one", func() {
			_, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Starter", PlanTier: "starter", BillingCycle: "monthly", Price: 2900,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			sub, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Professional", PlanTier: "professional", BillingCycle: "monthly", Price: 9900,
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(sub.PlanTier).To(gomega.Equal("professional"))
			gomega.Expect(mockRepo.cancelCalls).To(gomega.Equal([]int64{1, 1}))
		})

		ginkgo.It("defaults the currency to USD", func() {
			sub, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Starter", PlanTier: "starter", BillingCycle: "monthly",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(sub.Currency).To(gomega.Equal("USD"))
		})

		ginkgo.It("rejects an unknown tier", func() {
			_, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Custom", PlanTier: "platinum", BillingCycle: "monthly",
			})

			gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
		})

		ginkgo.It("rejects an unknown billing cycle", func() {
			_, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Starter", PlanTier: "starter", BillingCycle: "weekly",
			})

			gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
		})
	})

	ginkgo.Describe("TierForCompany", func() {
		ginkgo.It("returns the active plan tier", func() {
			_, err := service.Subscribe(CreateSubscriptionDTO{
				CompanyID: 1, PlanName: "Starter", PlanTier: "starter", BillingCycle: "monthly",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			tier, err := service.TierForCompany(1)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tier).To(gomega.Equal("starter"))
		})

		ginkgo.It("propagates no-subscription so the tier stays unknown", func() {
			_, err := service.TierForCompany(2)

			gomega.Expect(err).To(gomega.MatchError(ErrNoActiveSubscription))
		})
	})
})
