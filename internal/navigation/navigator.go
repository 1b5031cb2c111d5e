package navigation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frahmantamala/cash-pro/internal/core/events"
	"github.com/frahmantamala/cash-pro/internal/session"
)

// Navigator ties session state and user context to a filtered navigation
// tree. Every mutation that can change what the caller may see recomputes the
// tree synchronously and returns it; there is no implicit dependency
// tracking.
type Navigator struct {
	mu      sync.Mutex
	state   *session.State
	userCtx UserContext
	tree    Config
	logger  *slog.Logger
}

func NewNavigator(state *session.State, bus *events.EventBus, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Navigator{state: state, logger: logger}
	n.Recompute()

	if bus != nil {
		recompute := func(ctx context.Context, event events.Event) error {
			n.Recompute()
			return nil
		}
		bus.Subscribe(events.SessionChanged, recompute)
		bus.Subscribe(events.SessionCleared, recompute)
		bus.Subscribe(events.CompanySwitch, recompute)
	}

	return n
}

// SetUserContext installs the membership context delivered after a company
// switch and returns the freshly filtered tree.
func (n *Navigator) SetUserContext(tier Tier, role string, permissions []string) Config {
	n.mu.Lock()
	n.userCtx = NewUserContext(tier, role, permissions)
	n.mu.Unlock()
	return n.Recompute()
}

// Recompute rebuilds the tree from current session state and user context.
func (n *Navigator) Recompute() Config {
	var tree Config

	switch {
	case !n.state.IsAuthenticated():
		tree = Config{Items: []NavItem{}}
	case n.state.IsSuperAdmin():
		// Explicit short-circuit: the super admin tree carries no gates and
		// must not pass through the access filter.
		tree = SuperAdminNavigation()
	default:
		n.mu.Lock()
		userCtx := n.userCtx
		n.mu.Unlock()

		built := UserNavigation(userCtx.SubscriptionTier, userCtx.Role, n.state.HasAnyCompany())
		tree = Config{Items: FilterByAccess(built.Items, userCtx.Role, userCtx.SubscriptionTier, userCtx.HasPermission)}
	}

	n.mu.Lock()
	n.tree = tree
	n.mu.Unlock()
	return tree
}

// Tree returns the last computed tree without recomputing.
func (n *Navigator) Tree() Config {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tree
}
