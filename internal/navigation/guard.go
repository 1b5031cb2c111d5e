package navigation

import (
	"context"
	"log/slog"
)

type Action string

const (
	ActionAllow    Action = "allow"
	ActionRedirect Action = "redirect"
)

// Decision is the guard's verdict for one navigation attempt. Title and
// Description are the target route's display metadata, resolved on every
// invocation regardless of the verdict.
type Decision struct {
	Action      Action `json:"action"`
	Location    string `json:"location,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func allow(meta RouteMeta) Decision {
	return Decision{Action: ActionAllow, Title: meta.Title, Description: meta.Description}
}

func redirect(to string, meta RouteMeta) Decision {
	return Decision{Action: ActionRedirect, Location: to, Title: meta.Title, Description: meta.Description}
}

// SessionReader is the slice of session state the guard consumes. It is an
// interface so the guard can run against the live session container or a
// per-request snapshot.
type SessionReader interface {
	IsAuthenticated() bool
	IsSuperAdmin() bool
	HasAnyCompany() bool
	IsFetching() bool
	FetchCurrentUser(ctx context.Context) error
}

// Guard decides, before every navigation, whether the session may reach the
// target route. Decisions are evaluated top to bottom; the first matching
// rule wins.
type Guard struct {
	routes *RouteTable
	logger *slog.Logger
}

func NewGuard(routes *RouteTable, logger *slog.Logger) *Guard {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Guard{routes: routes, logger: logger}
}

// Evaluate runs the decision sequence for a navigation from originPath to
// targetPath. The origin is accepted for parity with the caller's route
// transition but takes no part in any rule.
//
// The guard fails open: a panic anywhere in evaluation (session store gone,
// nil state) yields an allow rather than stranding the caller mid-navigation.
func (g *Guard) Evaluate(ctx context.Context, session SessionReader, targetPath, originPath string) (decision Decision) {
	meta := g.routes.Lookup(targetPath)
	target := normalizePath(targetPath)
	if target == "/" {
		target = PathDashboard
	}

	defer func() {
		if r := recover(); r != nil {
			if g.logger != nil {
				g.logger.Error("guard evaluation panicked, allowing navigation",
					"target", targetPath, "panic", r)
			}
			decision = allow(meta)
		}
	}()

	// Best effort: recover an existing server-side session before judging an
	// unauthenticated caller. Refresh failures never block navigation.
	if !session.IsFetching() && target != PathLogin && target != PathRegister && !session.IsAuthenticated() {
		if err := session.FetchCurrentUser(ctx); err != nil && g.logger != nil {
			g.logger.Debug("session refresh failed during guard", "error", err)
		}
	}

	if meta.RequiresAuth && !session.IsAuthenticated() {
		return redirect(PathLogin, meta)
	}

	if meta.RequiresSuperAdmin && !session.IsSuperAdmin() {
		return redirect(PathDashboard, meta)
	}

	if (target == PathLogin || target == PathRegister) && session.IsAuthenticated() {
		// Super admins never need organization setup.
		if session.IsSuperAdmin() {
			return redirect(PathDashboard, meta)
		}
		if !session.HasAnyCompany() {
			return redirect(PathSetupOrganization, meta)
		}
		return redirect(PathDashboard, meta)
	}

	// Forced onboarding: members without a company may only reach the setup
	// pages.
	if session.IsAuthenticated() && !session.IsSuperAdmin() && !session.HasAnyCompany() {
		if target != PathSetupOrganization && target != PathSetupSubscription {
			return redirect(PathSetupOrganization, meta)
		}
	}

	return allow(meta)
}
