package company

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/transport"
	"github.com/frahmantamala/cash-pro/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateCompany handles POST /company.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	state, ok := auth.StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateCompany(state.Person.ID, dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("company creation failed", "person_id", state.Person.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}
