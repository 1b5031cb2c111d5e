package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/cash-pro/internal"
	"github.com/frahmantamala/cash-pro/internal/transport"
	"github.com/frahmantamala/cash-pro/pkg/logger"
)

const SessionCookieName = "cash_pro_session"

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	UserCtx      *ContextService
	CookieTTL    time.Duration
	SecureCookie bool
}

func NewHandler(svc ServiceAPI, userCtx *ContextService, cookieTTL time.Duration) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		UserCtx:     userCtx,
		CookieTTL:   cookieTTL,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, token, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Error("login failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, token, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.WriteJSON(w, http.StatusCreated, state)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if state, ok := StateFromContext(r.Context()); ok && state.Person != nil {
		if err := h.Service.Logout(state.Person.ID); err != nil {
			h.Logger.Error("logout failed", "person_id", state.Person.ID, "error", err)
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me: the current identity payload, same shape as login.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	state, ok := StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, state)
}

// Context handles GET /auth/context: tier, role and permissions for the
// current company membership.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	state, ok := StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto := h.UserCtx.ContextFor(state.Person.ID, state.CurrentCompanyID)
	h.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) SwitchCompany(w http.ResponseWriter, r *http.Request) {
	state, ok := StateFromContext(r.Context())
	if !ok || state.Person == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SwitchCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SwitchCompany(state.Person.ID, dto.CompanyID); err != nil {
		h.Logger.Error("company switch failed", "person_id", state.Person.ID, "company_id", dto.CompanyID, "error", err)
		if err == ErrNotMember {
			h.WriteError(w, http.StatusForbidden, "not a member of this company")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware resolves the session token into a full AuthState on the
// request context. Requests without a valid session are rejected.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := h.resolveState(r)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithState(r.Context(), state)))
	})
}

// OptionalAuthMiddleware resolves the session if one is present; anonymous
// requests pass through untouched. The navigation guard needs this: it makes
// its own decision about unauthenticated callers.
func (h *Handler) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if state, err := h.resolveState(r); err == nil {
			r = r.WithContext(ContextWithState(r.Context(), state))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin gates the admin console routes.
func (h *Handler) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := StateFromContext(r.Context())
		if !ok || state.Person == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !state.Person.IsSuperAdmin {
			h.Logger.Warn("access denied: super admin required", "person_id", state.Person.ID)
			h.WriteError(w, http.StatusForbidden, "super admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) resolveState(r *http.Request) (*AuthState, error) {
	token := h.sessionToken(r)
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims, err := h.Service.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}

	personID, err := strconv.ParseInt(claims.PersonID, 10, 64)
	if err != nil {
		h.Logger.Warn("failed to parse person id from token claims", "value", claims.PersonID, "error", err)
		return nil, ErrInvalidSession
	}

	return h.Service.StateForPerson(personID)
}

func (h *Handler) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return h.ExtractTokenFromHeader(r)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidCredentials:
		h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case ErrPersonInactive:
		h.WriteError(w, http.StatusForbidden, "account is inactive")
	case ErrEmailTaken:
		h.WriteError(w, http.StatusConflict, "email is already registered")
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			status, body := appErr.ToHTTPResponse()
			h.WriteJSON(w, status, body)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
