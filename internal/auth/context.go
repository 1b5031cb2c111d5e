package auth

import (
	"context"
	"log/slog"
)

type authCtxKey string

const ContextStateKey authCtxKey = "auth_state"

func StateFromContext(ctx context.Context) (*AuthState, bool) {
	s, ok := ctx.Value(ContextStateKey).(*AuthState)
	return s, ok
}

func ContextWithState(ctx context.Context, state *AuthState) context.Context {
	return context.WithValue(ctx, ContextStateKey, state)
}

// TierLookup resolves a company's active subscription tier.
type TierLookup interface {
	TierForCompany(companyID int64) (string, error)
}

// PermissionLookup resolves the permission strings granted to a person within
// a company, in "resource:action" form.
type PermissionLookup interface {
	PermissionsForPerson(personID, companyID int64) ([]string, error)
}

// ContextService assembles the per-membership user context (tier, role,
// permissions) after a company switch. Each piece degrades to null
// independently: a missing subscription or an RBAC failure must not take the
// rest of the context down with it.
type ContextService struct {
	authService ServiceAPI
	tiers       TierLookup
	permissions PermissionLookup
	logger      *slog.Logger
}

func NewContextService(authService ServiceAPI, tiers TierLookup, permissions PermissionLookup, logger *slog.Logger) *ContextService {
	return &ContextService{
		authService: authService,
		tiers:       tiers,
		permissions: permissions,
		logger:      logger,
	}
}

func (s *ContextService) ContextFor(personID int64, companyID *int64) UserContextDTO {
	out := UserContextDTO{Permissions: []string{}}
	if companyID == nil {
		return out
	}

	if tier, err := s.tiers.TierForCompany(*companyID); err != nil {
		s.logger.Warn("user context: no subscription tier", "company_id", *companyID, "error", err)
	} else if tier != "" {
		out.SubscriptionTier = &tier
	}

	if role, err := s.authService.RoleInCompany(personID, *companyID); err != nil {
		s.logger.Warn("user context: no membership role", "person_id", personID, "company_id", *companyID, "error", err)
	} else if role != "" {
		out.Role = &role
	}

	if perms, err := s.permissions.PermissionsForPerson(personID, *companyID); err != nil {
		s.logger.Warn("user context: could not load permissions", "person_id", personID, "error", err)
	} else if perms != nil {
		out.Permissions = perms
	}

	return out
}
