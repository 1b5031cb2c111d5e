package navigation

// Tier is a subscription level. The zero value means "no tier known": the
// free plan and the not-yet-loaded state are deliberately indistinguishable
// to the navigation rules.
type Tier string

const (
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// ParseTier maps a stored tier string to a Tier, returning "" for anything
// outside the closed set.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierStarter, TierProfessional, TierEnterprise:
		return Tier(s)
	default:
		return ""
	}
}

// NavItem is one node of the navigation forest. ID is unique among siblings
// only. An item carries either a Path or Children in practice, though nothing
// enforces that. The Requires* fields are gates evaluated by FilterByAccess.
type NavItem struct {
	ID                   string    `json:"id"`
	Label                string    `json:"label"`
	Icon                 string    `json:"icon,omitempty"`
	Path                 string    `json:"path,omitempty"`
	Children             []NavItem `json:"children,omitempty"`
	RequiresPermission   string    `json:"requiresPermission,omitempty"`
	RequiresRole         []string  `json:"requiresRole,omitempty"`
	RequiresSubscription []Tier    `json:"requiresSubscription,omitempty"`
}

// Config is the forest handed to the rendering layer; item order is the
// display order and is fixed by the builder.
type Config struct {
	Items []NavItem `json:"items"`
}

func tierIn(tier Tier, allowed []Tier) bool {
	for _, t := range allowed {
		if t == tier {
			return true
		}
	}
	return false
}

func roleIn(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
