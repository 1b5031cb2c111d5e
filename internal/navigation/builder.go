package navigation

// SuperAdminNavigation returns the fixed console tree for super admins.
// Subscription tier and role are ignored: super admins see everything.
func SuperAdminNavigation() Config {
	return Config{
		Items: []NavItem{
			{ID: "dashboard", Label: "Dashboard", Icon: "grid-outline", Path: "/dashboard"},
			{
				ID:    "admin",
				Label: "Administration",
				Icon:  "settings-outline",
				Children: []NavItem{
					{ID: "admin-users", Label: "User Management", Icon: "people-outline", Path: "/admin/users"},
					{ID: "admin-companies", Label: "Company Management", Icon: "business-outline", Path: "/admin/companies"},
					{ID: "admin-subscriptions", Label: "Subscription Plans", Icon: "card-outline", Path: "/admin/subscriptions"},
					{ID: "admin-system", Label: "System Settings", Icon: "construct-outline", Path: "/admin/system"},
				},
			},
			{
				ID:    "monitoring",
				Label: "Monitoring",
				Icon:  "stats-chart-outline",
				Children: []NavItem{
					{ID: "monitoring-logs", Label: "System Logs", Icon: "document-text-outline", Path: "/admin/logs"},
					{ID: "monitoring-metrics", Label: "Metrics", Icon: "analytics-outline", Path: "/admin/metrics"},
					{ID: "monitoring-health", Label: "Health Check", Icon: "medical-outline", Path: "/admin/health"},
				},
			},
			{
				ID:    "settings",
				Label: "Settings",
				Icon:  "lock-closed-outline",
				Children: []NavItem{
					{ID: "settings-roles", Label: "Roles", Icon: "person-outline", Path: "/settings/roles"},
					{ID: "settings-permissions", Label: "Permissions", Icon: "key-outline", Path: "/settings/permissions"},
				},
			},
		},
	}
}

// UserNavigation composes the tree for a regular member. Section presence is
// decided here by tier; item-level gates on the returned items are evaluated
// later by FilterByAccess. A section can therefore come back with children
// that all fail their own gates; the filter collapses such parents.
//
// The role parameter participates in the contract but not in section
// selection: role gates live on individual items.
func UserNavigation(tier Tier, role string, hasCompany bool) Config {
	if !hasCompany {
		// Nothing to navigate to without a membership, whatever the tier
		// or role claim to be.
		return Config{
			Items: []NavItem{
				{ID: "dashboard", Label: "Dashboard", Icon: "grid-outline", Path: "/dashboard"},
			},
		}
	}

	items := []NavItem{
		{ID: "dashboard", Label: "Dashboard", Icon: "grid-outline", Path: "/dashboard"},
		{
			ID:    "financial",
			Label: "Financial",
			Icon:  "briefcase-outline",
			Children: []NavItem{
				{ID: "invoices", Label: "Invoices", Icon: "document-text-outline", Path: "/invoices", RequiresPermission: "invoice:read"},
				{ID: "customers", Label: "Customers", Icon: "people-outline", Path: "/customers", RequiresPermission: "customer:read"},
				{ID: "payments", Label: "Payments", Icon: "cash-outline", Path: "/payments", RequiresPermission: "payment:read"},
			},
		},
	}

	if tierIn(tier, []Tier{TierStarter, TierProfessional, TierEnterprise}) {
		items = append(items, NavItem{
			ID:    "reports-section",
			Label: "Reports",
			Icon:  "bar-chart-outline",
			Children: []NavItem{
				{ID: "reports", Label: "Reports", Icon: "document-attach-outline", Path: "/reports",
					RequiresSubscription: []Tier{TierStarter, TierProfessional, TierEnterprise}},
				{ID: "analytics", Label: "Analytics", Icon: "stats-chart-outline", Path: "/analytics",
					RequiresSubscription: []Tier{TierProfessional, TierEnterprise}},
			},
		})
	}

	if tierIn(tier, []Tier{TierProfessional, TierEnterprise}) {
		items = append(items, NavItem{
			ID:    "advanced",
			Label: "Advanced",
			Icon:  "flash-outline",
			Children: []NavItem{
				{ID: "projects", Label: "Projects", Icon: "folder-outline", Path: "/projects",
					RequiresSubscription: []Tier{TierProfessional, TierEnterprise}},
				{ID: "expenses", Label: "Expenses", Icon: "wallet-outline", Path: "/expenses",
					RequiresSubscription: []Tier{TierProfessional, TierEnterprise}},
				{ID: "inventory", Label: "Inventory", Icon: "cube-outline", Path: "/inventory",
					RequiresSubscription: []Tier{TierEnterprise}},
			},
		})
	}

	if tier == TierEnterprise {
		items = append(items, NavItem{
			ID:    "enterprise",
			Label: "Enterprise",
			Icon:  "rocket-outline",
			Children: []NavItem{
				{ID: "integrations", Label: "Integrations", Icon: "link-outline", Path: "/integrations",
					RequiresSubscription: []Tier{TierEnterprise}},
				{ID: "api-keys", Label: "API Keys", Icon: "key-outline", Path: "/api-keys",
					RequiresSubscription: []Tier{TierEnterprise},
					RequiresRole:         []string{"owner", "admin"}},
			},
		})
	}

	items = append(items, NavItem{
		ID:    "settings",
		Label: "Settings",
		Icon:  "settings-outline",
		Children: []NavItem{
			{ID: "settings-profile", Label: "Profile", Icon: "person-outline", Path: "/settings/profile"},
			{ID: "settings-company", Label: "Company", Icon: "business-outline", Path: "/settings/company",
				RequiresRole: []string{"owner", "admin"}},
			{ID: "settings-billing", Label: "Billing", Icon: "card-outline", Path: "/settings/billing",
				RequiresRole: []string{"owner", "admin"}},
			{ID: "settings-roles", Label: "Roles & Permissions", Icon: "lock-closed-outline", Path: "/settings/roles",
				RequiresRole: []string{"owner", "admin"}},
		},
	})

	return Config{Items: items}
}

// Build is the single entry point: super admins get the fixed console tree
// and bypass access filtering entirely.
func Build(isSuperAdmin bool, tier Tier, role string, hasCompany bool) Config {
	if isSuperAdmin {
		return SuperAdminNavigation()
	}
	return UserNavigation(tier, role, hasCompany)
}
