package navigation

import (
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// fakeSession is a scriptable SessionReader for guard specs.
type fakeSession struct {
	authenticated bool
	superAdmin    bool
	hasCompany    bool
	fetching      bool

	fetchCalls int
	fetchErr   error
	// onFetch lets specs flip state mid-evaluation, the way a successful
	// refresh would.
	onFetch func(s *fakeSession)
	panics  bool
}

func (s *fakeSession) IsAuthenticated() bool { return s.authenticated }
func (s *fakeSession) IsSuperAdmin() bool {
	if s.panics {
		panic("session store gone")
	}
	return s.superAdmin
}
func (s *fakeSession) HasAnyCompany() bool { return s.hasCompany }
func (s *fakeSession) IsFetching() bool    { return s.fetching }
func (s *fakeSession) FetchCurrentUser(ctx context.Context) error {
	s.fetchCalls++
	if s.onFetch != nil {
		s.onFetch(s)
	}
	return s.fetchErr
}

var _ = ginkgo.Describe("Guard", func() {
	var (
		guard *Guard
		sess  *fakeSession
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		guard = NewGuard(DefaultRoutes(), nil)
		sess = &fakeSession{}
		ctx = context.Background()
	})

	ginkgo.Describe("session refresh", func() {
		ginkgo.It("attempts a refresh for unauthenticated callers", func() {
			guard.Evaluate(ctx, sess, "/dashboard", "/login")

			gomega.Expect(sess.fetchCalls).To(gomega.Equal(1))
		})

		ginkgo.It("skips the refresh when a fetch is already in flight", func() {
			sess.fetching = true

			guard.Evaluate(ctx, sess, "/dashboard", "/login")

			gomega.Expect(sess.fetchCalls).To(gomega.BeZero())
		})

		ginkgo.It("skips the refresh on the login and register pages", func() {
			guard.Evaluate(ctx, sess, "/login", "/")
			guard.Evaluate(ctx, sess, "/register", "/")

			gomega.Expect(sess.fetchCalls).To(gomega.BeZero())
		})

		ginkgo.It("does not block navigation when the refresh fails", func() {
			sess.fetchErr = errors.New("auth service unavailable")

			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Location).To(gomega.Equal(PathLogin))
		})

		ginkgo.It("honors state recovered by the refresh", func() {
			sess.onFetch = func(s *fakeSession) {
				s.authenticated = true
				s.hasCompany = true
			}

			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
		})
	})

	ginkgo.Describe("authentication requirement", func() {
		ginkgo.It("redirects unauthenticated callers to login for protected routes", func() {
			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Location).To(gomega.Equal(PathLogin))
		})

		ginkgo.It("allows unauthenticated callers on public routes", func() {
			decision := guard.Evaluate(ctx, sess, "/login", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
		})
	})

	ginkgo.Describe("super admin requirement", func() {
		ginkgo.It("redirects regular members away from admin routes to the dashboard", func() {
			sess.authenticated = true
			sess.hasCompany = true

			decision := guard.Evaluate(ctx, sess, "/admin/users", "/dashboard")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Location).To(gomega.Equal(PathDashboard))
		})

		ginkgo.It("allows super admins on admin routes", func() {
			sess.authenticated = true
			sess.superAdmin = true

			decision := guard.Evaluate(ctx, sess, "/admin/users", "/dashboard")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
		})
	})

	ginkgo.Describe("authenticated callers on login or register", func() {
		ginkgo.It("sends super admins to the dashboard", func() {
			sess.authenticated = true
			sess.superAdmin = true

			decision := guard.Evaluate(ctx, sess, "/login", "/")

			gomega.Expect(decision.Location).To(gomega.Equal(PathDashboard))
		})

		ginkgo.It("sends members without a company to organization setup", func() {
			sess.authenticated = true

			decision := guard.Evaluate(ctx, sess, "/login", "/")

			gomega.Expect(decision.Location).To(gomega.Equal(PathSetupOrganization))
		})

		ginkgo.It("sends members with a company to the dashboard", func() {
			sess.authenticated = true
			sess.hasCompany = true

			decision := guard.Evaluate(ctx, sess, "/register", "/")

			gomega.Expect(decision.Location).To(gomega.Equal(PathDashboard))
		})
	})

	ginkgo.Describe("forced onboarding", func() {
		ginkgo.BeforeEach(func() {
			sess.authenticated = true
			sess.hasCompany = false
		})

		ginkgo.It("redirects members without a company to organization setup", func() {
			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Location).To(gomega.Equal(PathSetupOrganization))
		})

		ginkgo.It("allows the setup pages themselves", func() {
			organization := guard.Evaluate(ctx, sess, "/setup/organization", "/")
			subscription := guard.Evaluate(ctx, sess, "/setup/subscription", "/")

			gomega.Expect(organization.Action).To(gomega.Equal(ActionAllow))
			gomega.Expect(subscription.Action).To(gomega.Equal(ActionAllow))
		})

		ginkgo.It("never applies to super admins", func() {
			sess.superAdmin = true

			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
		})
	})

	ginkgo.Describe("page metadata", func() {
		ginkgo.It("carries the target route's title on allow", func() {
			sess.authenticated = true
			sess.hasCompany = true

			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Title).To(gomega.Equal("Dashboard - Cash Pro"))
		})

		ginkgo.It("carries the target route's title on redirect", func() {
			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionRedirect))
			gomega.Expect(decision.Title).To(gomega.Equal("Dashboard - Cash Pro"))
		})

		ginkgo.It("resolves unknown paths to the catch-all metadata", func() {
			decision := guard.Evaluate(ctx, sess, "/no/such/page", "/")

			gomega.Expect(decision.Title).To(gomega.Equal("404 - Page Not Found - Cash Pro"))
		})
	})

	ginkgo.Describe("failure handling", func() {
		ginkgo.It("allows navigation when evaluation panics", func() {
			sess.authenticated = true
			sess.panics = true

			decision := guard.Evaluate(ctx, sess, "/dashboard", "/")

			gomega.Expect(decision.Action).To(gomega.Equal(ActionAllow))
		})
	})
})

var _ = ginkgo.Describe("RouteTable", func() {
	table := DefaultRoutes()

	ginkgo.It("aliases the root path to the dashboard", func() {
		meta := table.Lookup("/")

		gomega.Expect(meta.Name).To(gomega.Equal("Dashboard"))
	})

	ginkgo.It("ignores trailing slashes", func() {
		meta := table.Lookup("/dashboard/")

		gomega.Expect(meta.Name).To(gomega.Equal("Dashboard"))
	})

	ginkgo.It("gives plan detail pages their own metadata", func() {
		meta := table.Lookup("/admin/subscriptions/42")

		gomega.Expect(meta.RequiresSuperAdmin).To(gomega.BeTrue())
		gomega.Expect(meta.Title).To(gomega.Equal("Subscription Plan Details - Cash Pro"))
	})

	ginkgo.It("falls back to the catch-all for unknown paths", func() {
		meta := table.Lookup("/unknown")

		gomega.Expect(meta.Name).To(gomega.Equal("NotFound"))
		gomega.Expect(meta.RequiresAuth).To(gomega.BeFalse())
	})
})
