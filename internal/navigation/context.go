package navigation

// UserContext carries the membership-scoped access context: subscription
// tier, role and the permission grant set. It is supplied externally after a
// company switch and is not part of session state.
type UserContext struct {
	SubscriptionTier Tier
	Role             string
	permissions      map[string]struct{}
}

func NewUserContext(tier Tier, role string, permissions []string) UserContext {
	set := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return UserContext{
		SubscriptionTier: tier,
		Role:             role,
		permissions:      set,
	}
}

func (c UserContext) HasPermission(permission string) bool {
	_, ok := c.permissions[permission]
	return ok
}

func (c UserContext) Permissions() []string {
	out := make([]string, 0, len(c.permissions))
	for p := range c.permissions {
		out = append(out, p)
	}
	return out
}
