package navigation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/session"
	"github.com/frahmantamala/cash-pro/internal/transport"
	"github.com/frahmantamala/cash-pro/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	UserCtx *auth.ContextService
	Guard   *Guard
}

func NewHandler(userCtx *auth.ContextService, guard *Guard) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		UserCtx:     userCtx,
		Guard:       guard,
	}
}

// GetNavigation handles GET /navigation: the filtered tree for the caller's
// session and current company context.
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	state, ok := auth.StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteJSON(w, http.StatusOK, Config{Items: []NavItem{}})
		return
	}

	if state.Person.IsSuperAdmin {
		h.WriteJSON(w, http.StatusOK, SuperAdminNavigation())
		return
	}

	userCtx := h.resolveUserContext(state)
	built := UserNavigation(userCtx.SubscriptionTier, userCtx.Role, len(state.Companies) > 0)
	h.WriteJSON(w, http.StatusOK, Config{
		Items: FilterByAccess(built.Items, userCtx.Role, userCtx.SubscriptionTier, userCtx.HasPermission),
	})
}

// ResolveGuard handles GET /navigation/guard?path=&from=: the guard decision
// plus page metadata for a prospective navigation.
func (h *Handler) ResolveGuard(w http.ResponseWriter, r *http.Request) {
	targetPath := r.URL.Query().Get("path")
	if targetPath == "" {
		h.WriteError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}
	originPath := r.URL.Query().Get("from")

	var snap *session.Snapshot
	if state, ok := auth.StateFromContext(r.Context()); ok && state.Person != nil {
		snap = &session.Snapshot{
			Person:           state.Person,
			Companies:        state.Companies,
			CurrentCompanyID: state.CurrentCompanyID,
			IsImpersonating:  state.IsImpersonating,
		}
	}

	st := session.NewStateFromSnapshot(snap, resolvedIdentityClient{snap: snap}, h.Logger)
	decision := h.Guard.Evaluate(r.Context(), st, targetPath, originPath)
	h.WriteJSON(w, http.StatusOK, decision)
}

func (h *Handler) resolveUserContext(state *auth.AuthState) UserContext {
	dto := h.UserCtx.ContextFor(state.Person.ID, state.CurrentCompanyID)

	var tier Tier
	if dto.SubscriptionTier != nil {
		tier = ParseTier(*dto.SubscriptionTier)
	}
	var role string
	if dto.Role != nil {
		role = *dto.Role
	}
	return NewUserContext(tier, role, dto.Permissions)
}

// resolvedIdentityClient backs per-request guard evaluation: the identity was
// already resolved by the auth middleware, so a refresh just replays it.
type resolvedIdentityClient struct {
	snap *session.Snapshot
}

var errGuardOnly = errors.New("session mutation not supported during guard evaluation")

func (c resolvedIdentityClient) CurrentIdentity(ctx context.Context) (*session.Snapshot, error) {
	if c.snap == nil {
		return nil, auth.ErrInvalidSession
	}
	return c.snap, nil
}

func (c resolvedIdentityClient) Login(ctx context.Context, emailOrUsername, password string) (*session.Snapshot, error) {
	return nil, errGuardOnly
}

func (c resolvedIdentityClient) Register(ctx context.Context, params session.RegisterParams) (*session.Snapshot, error) {
	return nil, errGuardOnly
}

func (c resolvedIdentityClient) Logout(ctx context.Context) error {
	return errGuardOnly
}

func (c resolvedIdentityClient) SwitchCompany(ctx context.Context, companyID int64) error {
	return errGuardOnly
}
