package rbac

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/transport"
	"github.com/frahmantamala/cash-pro/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Auth    auth.ServiceAPI
}

func NewHandler(svc ServiceAPI, authSvc auth.ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Auth:        authSvc,
	}
}

// currentCompany resolves the caller's selected company and checks the role
// gate. Role management is restricted to owners and admins.
func (h *Handler) currentCompany(w http.ResponseWriter, r *http.Request, manageRequired bool) (*auth.AuthState, int64, bool) {
	state, ok := auth.StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}
	if state.CurrentCompanyID == nil {
		h.WriteError(w, http.StatusBadRequest, "no company selected")
		return nil, 0, false
	}
	companyID := *state.CurrentCompanyID

	if manageRequired && !state.Person.IsSuperAdmin {
		role, err := h.Auth.RoleInCompany(state.Person.ID, companyID)
		if err != nil || (role != "owner" && role != "admin") {
			h.WriteError(w, http.StatusForbidden, "insufficient role")
			return nil, 0, false
		}
	}
	return state, companyID, true
}

// ListRoles handles GET /rbac/roles.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := h.currentCompany(w, r, false)
	if !ok {
		return
	}

	roles, err := h.Service.ListRoles(companyID)
	if err != nil {
		h.Logger.Error("list roles failed", "company_id", companyID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

// CreateRole handles POST /rbac/roles.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	state, companyID, ok := h.currentCompany(w, r, true)
	if !ok {
		return
	}

	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.CreateRole(companyID, dto)
	if err != nil {
		switch {
		case errors.As(err, &ValidationError{}):
			h.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrRoleNameTaken):
			h.WriteError(w, http.StatusConflict, "role name already exists")
		default:
			h.Logger.Error("create role failed", "person_id", state.Person.ID, "company_id", companyID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	h.WriteJSON(w, http.StatusCreated, role)
}

// ListPermissions handles GET /rbac/permissions.
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.currentCompany(w, r, false); !ok {
		return
	}

	perms, err := h.Service.ListPermissions()
	if err != nil {
		h.Logger.Error("list permissions failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, perms)
}

// AssignRole handles POST /rbac/assign-role.
func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	state, companyID, ok := h.currentCompany(w, r, true)
	if !ok {
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignRole(companyID, dto); err != nil {
		switch {
		case errors.As(err, &ValidationError{}):
			h.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrRoleNotFound):
			h.WriteError(w, http.StatusNotFound, "role not found")
		default:
			h.Logger.Error("assign role failed", "person_id", state.Person.ID, "company_id", companyID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}
