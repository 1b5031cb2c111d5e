package navigation

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/core/events"
	"github.com/frahmantamala/cash-pro/internal/session"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// fakeAuthClient plays the auth collaborator: a single account whose
// membership list the scenario can grow as it runs.
type fakeAuthClient struct {
	person    *auth.Person
	companies []auth.Company
	current   *int64
	loggedIn  bool
}

func (c *fakeAuthClient) snapshot() *session.Snapshot {
	return &session.Snapshot{
		Person:           c.person,
		Companies:        c.companies,
		CurrentCompanyID: c.current,
	}
}

func (c *fakeAuthClient) Login(ctx context.Context, emailOrUsername, password string) (*session.Snapshot, error) {
	c.loggedIn = true
	return c.snapshot(), nil
}

func (c *fakeAuthClient) Register(ctx context.Context, params session.RegisterParams) (*session.Snapshot, error) {
	c.loggedIn = true
	return c.snapshot(), nil
}

func (c *fakeAuthClient) Logout(ctx context.Context) error {
	c.loggedIn = false
	return nil
}

func (c *fakeAuthClient) CurrentIdentity(ctx context.Context) (*session.Snapshot, error) {
	if !c.loggedIn {
		return nil, auth.ErrInvalidSession
	}
	return c.snapshot(), nil
}

func (c *fakeAuthClient) SwitchCompany(ctx context.Context, companyID int64) error {
	c.current = &companyID
	return nil
}

var _ = ginkgo.Describe("Navigator", func() {
	var (
		client *fakeAuthClient
		bus    *events.EventBus
		state  *session.State
		nav    *Navigator
		ctx    context.Context
	)

	newMember := func() *auth.Person {
		return &auth.Person{ID: 7, Email: "owner@acme.test", IsActive: true}
	}

	ginkgo.BeforeEach(func() {
		client = &fakeAuthClient{person: newMember()}
		bus = events.NewEventBus(slog.Default())
		state = session.NewState(client, session.NewMemoryBlobStore(), bus, slog.Default())
		nav = NewNavigator(state, bus, slog.Default())
		ctx = context.Background()
	})

	ginkgo.It("exposes an empty tree while unauthenticated", func() {
		gomega.Expect(nav.Tree().Items).To(gomega.BeEmpty())
	})

	ginkgo.It("recomputes on login through the event bus", func() {
		client.companies = []auth.Company{{ID: 1, Name: "Acme", Slug: "acme"}}

		err := state.Login(ctx, "owner@acme.test", "secret")

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(itemIDs(nav.Tree().Items)).To(gomega.ContainElement("dashboard"))
	})

	ginkgo.It("clears the tree on logout", func() {
		client.companies = []auth.Company{{ID: 1, Name: "Acme", Slug: "acme"}}
		gomega.Expect(state.Login(ctx, "owner@acme.test", "secret")).To(gomega.Succeed())

		gomega.Expect(state.Logout(ctx)).To(gomega.Succeed())

		gomega.Expect(nav.Tree().Items).To(gomega.BeEmpty())
	})

	ginkgo.It("short-circuits super admins past the access filter", func() {
		client.person.IsSuperAdmin = true
		gomega.Expect(state.Login(ctx, "owner@acme.test", "secret")).To(gomega.Succeed())

		tree := nav.Tree()

		gomega.Expect(itemIDs(tree.Items)).To(gomega.Equal([]string{"dashboard", "admin", "monitoring", "settings"}))
	})

	ginkgo.It("applies the user context delivered after a company switch", func() {
		client.companies = []auth.Company{{ID: 1, Name: "Acme", Slug: "acme"}}
		gomega.Expect(state.Login(ctx, "owner@acme.test", "secret")).To(gomega.Succeed())

		tree := nav.SetUserContext(TierProfessional, "owner", []string{"invoice:read", "customer:read", "payment:read"})
		ids := itemIDs(tree.Items)

		gomega.Expect(ids).To(gomega.ContainElement("financial"))
		gomega.Expect(ids).To(gomega.ContainElement("reports-section"))
		gomega.Expect(ids).To(gomega.ContainElement("advanced"))
		gomega.Expect(ids).NotTo(gomega.ContainElement("enterprise"))
	})

	ginkgo.Describe("onboarding a new account end to end", func() {
		ginkgo.It("walks register, setup redirect, company creation and dashboard access", func() {
			guard := NewGuard(DefaultRoutes(), slog.Default())

			// Register: authenticated, but no memberships yet.
			err := state.Register(ctx, session.RegisterParams{Email: "owner@acme.test", Password: "s3cret-pass"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(state.IsAuthenticated()).To(gomega.BeTrue())
			gomega.Expect(state.HasAnyCompany()).To(gomega.BeFalse())

			// The dashboard is off limits until an organization exists.
			decision := guard.Evaluate(ctx, state, PathDashboard, PathRegister)
			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Location).To(gomega.Equal(PathSetupOrganization))

			// The setup page itself is reachable, and navigation shows only
			// the dashboard entry.
			decision = guard.Evaluate(ctx, state, PathSetupOrganization, PathRegister)
			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
			gomega.Expect(itemIDs(nav.Tree().Items)).To(gomega.Equal([]string{"dashboard"}))

			// Creating the organization grows the membership list server-side;
			// the session learns about it on the next refresh.
			companyID := int64(1)
			client.companies = []auth.Company{{ID: companyID, Name: "Acme", Slug: "acme"}}
			client.current = &companyID
			gomega.Expect(state.FetchCurrentUser(ctx)).To(gomega.Succeed())
			gomega.Expect(state.HasAnyCompany()).To(gomega.BeTrue())
			gomega.Expect(state.CurrentCompany()).NotTo(gomega.BeNil())

			// The dashboard opens up.
			decision = guard.Evaluate(ctx, state, PathDashboard, PathSetupSubscription)
			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
			gomega.Expect(decision.Title).To(gomega.Equal("Dashboard - Cash Pro"))

			// With the membership context applied, the full tree appears.
			tree := nav.SetUserContext(TierStarter, "owner", []string{"invoice:read", "customer:read", "payment:read"})
			ids := itemIDs(tree.Items)
			gomega.Expect(ids).To(gomega.ContainElement("financial"))
			gomega.Expect(ids).To(gomega.ContainElement("reports-section"))
			gomega.Expect(ids).To(gomega.ContainElement("settings"))
		})
	})
})
