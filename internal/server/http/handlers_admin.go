package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get(common.AuthorizationHeader))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		session, err := h.svc.Admin.Authenticate(r.Context(), raw)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), session, raw)))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}

	token, session, err := h.svc.Admin.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: session.ExpiresAt})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := sessionFromContext(r.Context()); ok {
		h.logger.Debug(r.Context(), "logout requested", "subject", session.Subject)
	}
	if err := h.svc.Admin.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}

const (
	viewInstallations = "installations"
	viewMobility      = "mobility"
	viewCalendar      = "calendar"
)

type dashboardResponse struct {
	View string `json:"view"`
	*services.Dashboard
}

type calendarResponse struct {
	View string `json:"view"`
	*services.CalendarView
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := q.Get("view")
	if view == "" {
		view = viewInstallations
	}
	query, status := q.Get("q"), q.Get("status")

	switch view {
	case viewInstallations, viewMobility:
		d, err := h.svc.Dashboard.Load(r.Context(), query, status)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if view == viewInstallations {
			d.MobilityAccounts = nil
		} else {
			d.Installations = nil
		}
		writeSuccess(w, http.StatusOK, dashboardResponse{View: view, Dashboard: d})

	case viewCalendar:
		month := h.svc.Dashboard.Today()
		if m := q.Get("month"); m != "" {
			parsed, err := calendar.ParseMonth(m)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			month = parsed
		}
		c, err := h.svc.Dashboard.Calendar(r.Context(), month, query, status)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeSuccess(w, http.StatusOK, calendarResponse{View: view, CalendarView: c})

	default:
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "view must be installations, mobility or calendar")
	}
}

func (h *Handler) listAttachments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Attachments.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, list)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateInstallationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}

	inst, err := h.svc.Records.UpdateInstallationStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, inst)
}

func (h *Handler) updateAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}

	acc, err := h.svc.Records.UpdateAccountStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, acc)
}

type rescheduleRequest struct {
	From models.Date `json:"from"`
	To   models.Date `json:"to"`
}

type rescheduleResponse struct {
	Installation *models.Installation `json:"installation"`
	Changed      bool                 `json:"changed"`
}

func (h *Handler) rescheduleInstallation(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, common.ErrInvalidDate) {
			h.fail(w, r, err)
			return
		}
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}

	inst, changed, err := h.svc.Records.Reschedule(r.Context(), chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rescheduleResponse{Installation: inst, Changed: changed})
}
