package navigation

// PermissionFunc reports whether the current membership holds a
// "resource:action" grant.
type PermissionFunc func(permission string) bool

// FilterByAccess prunes a navigation forest by role, subscription tier and
// permissions, preserving relative order.
//
// Role and subscription gates are skipped when the corresponding context
// value is unknown (empty role, empty tier): unknown context is permissive
// for those two gates. Permission gates are always enforced through
// hasPermission, with no such bypass. That asymmetry is load-bearing; callers
// depend on role/tier-gated items surviving until context arrives.
//
// A parent whose children all filtered away is dropped unless it has a path
// of its own, so no dead menu headings reach the renderer.
func FilterByAccess(items []NavItem, role string, tier Tier, hasPermission PermissionFunc) []NavItem {
	filtered := make([]NavItem, 0, len(items))

	for _, item := range items {
		if len(item.RequiresRole) > 0 && role != "" && !roleIn(role, item.RequiresRole) {
			continue
		}

		if len(item.RequiresSubscription) > 0 && tier != "" && !tierIn(tier, item.RequiresSubscription) {
			continue
		}

		if item.RequiresPermission != "" && !hasPermission(item.RequiresPermission) {
			continue
		}

		if item.Children != nil {
			children := FilterByAccess(item.Children, role, tier, hasPermission)
			if len(children) == 0 && item.Path == "" {
				continue
			}
			item.Children = children
		}

		filtered = append(filtered, item)
	}

	return filtered
}
