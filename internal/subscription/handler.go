package subscription

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

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

// ListPlans handles GET /subscription/plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.ListPlans()
	if err != nil {
		h.Logger.Error("failed to list plans", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

// Subscribe handles POST /subscription.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	state, ok := auth.StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSubscriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Auth.RoleInCompany(state.Person.ID, dto.CompanyID); err != nil {
		h.WriteError(w, http.StatusForbidden, "not a member of this company")
		return
	}

	sub, err := h.Service.Subscribe(dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("subscription failed", "company_id", dto.CompanyID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, sub)
}

// Current handles GET /subscriptions/current?company_id=.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	state, ok := auth.StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	companyID, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "company_id query parameter is required")
		return
	}

	if _, err := h.Auth.RoleInCompany(state.Person.ID, companyID); err != nil {
		h.WriteError(w, http.StatusForbidden, "not a member of this company")
		return
	}

	sub, err := h.Service.CurrentForCompany(companyID)
	if err != nil {
		if err == ErrNoActiveSubscription {
			h.WriteError(w, http.StatusNotFound, "company has no active subscription")
			return
		}
		h.Logger.Error("failed to load subscription", "company_id", companyID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, sub)
}
