package navigation

import "strings"

const (
	PathLogin             = "/login"
	PathRegister          = "/register"
	PathDashboard         = "/dashboard"
	PathSetupOrganization = "/setup/organization"
	PathSetupSubscription = "/setup/subscription"
)

// RouteMeta is the static per-route metadata the guard evaluates. It is
// attached to the route table at construction and never changes at runtime.
type RouteMeta struct {
	Path               string `json:"path"`
	Name               string `json:"name"`
	RequiresAuth       bool   `json:"requires_auth"`
	RequiresSuperAdmin bool   `json:"requires_super_admin"`
	Title              string `json:"title"`
	Description        string `json:"description"`
}

type RouteTable struct {
	byPath   map[string]RouteMeta
	notFound RouteMeta
}

// DefaultRoutes builds the application route table.
func DefaultRoutes() *RouteTable {
	routes := []RouteMeta{
		{Path: PathLogin, Name: "Login", Title: "Login - Cash Pro", Description: "Login to your Cash Pro account"},
		{Path: PathRegister, Name: "Register", Title: "Register - Cash Pro", Description: "Create a new Cash Pro account"},
		{Path: PathSetupOrganization, Name: "SetupOrganization", RequiresAuth: true,
			Title: "Create Organization - Cash Pro", Description: "Create your organization"},
		{Path: PathSetupSubscription, Name: "SetupSubscription", RequiresAuth: true,
			Title: "Select Subscription - Cash Pro", Description: "Choose your subscription plan"},
		{Path: PathDashboard, Name: "Dashboard", RequiresAuth: true,
			Title: "Dashboard - Cash Pro", Description: "Your Cash Pro dashboard"},
		{Path: "/admin/users", Name: "AdminUsers", RequiresAuth: true, RequiresSuperAdmin: true,
			Title: "User Management - Cash Pro", Description: "Manage users and access"},
		{Path: "/admin/companies", Name: "AdminCompanies", RequiresAuth: true, RequiresSuperAdmin: true,
			Title: "Company Management - Cash Pro", Description: "Manage companies and tenant databases"},
		{Path: "/admin/subscriptions", Name: "AdminSubscriptions", RequiresAuth: true, RequiresSuperAdmin: true,
			Title: "Subscription Plans - Cash Pro", Description: "Manage subscription plans and modules"},
		{Path: "/settings/roles", Name: "Roles", RequiresAuth: true,
			Title: "Roles - Cash Pro", Description: "Manage roles and permissions"},
		{Path: "/settings/permissions", Name: "Permissions", RequiresAuth: true,
			Title: "Permissions - Cash Pro", Description: "View and manage permissions"},
	}

	byPath := make(map[string]RouteMeta, len(routes))
	for _, r := range routes {
		byPath[r.Path] = r
	}

	return &RouteTable{
		byPath: byPath,
		notFound: RouteMeta{
			Path:  "*",
			Name:  "NotFound",
			Title: "404 - Page Not Found - Cash Pro", Description: "The requested page could not be found",
		},
	}
}

// Lookup resolves a request path to route metadata. "/" aliases the
// dashboard; subscription plan detail pages share the list page's metadata.
// Unknown paths resolve to the catch-all.
func (t *RouteTable) Lookup(path string) RouteMeta {
	path = normalizePath(path)

	if path == "/" {
		path = PathDashboard
	}

	if meta, ok := t.byPath[path]; ok {
		return meta
	}

	if strings.HasPrefix(path, "/admin/subscriptions/") {
		meta := t.byPath["/admin/subscriptions"]
		meta.Title = "Subscription Plan Details - Cash Pro"
		meta.Description = "View subscription plan details and statistics"
		return meta
	}

	return t.notFound
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
