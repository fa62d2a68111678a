// Package http exposes the portal as a JSON API over chi.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/server/forms"
	"github.com/dmitrijs2005/sitereg/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the use cases the API serves.
type Services struct {
	Registration *services.RegistrationService
	Admin        *services.AdminService
	Records      *services.RecordService
	Dashboard    *services.DashboardService
	Attachments  *services.AttachmentService
}

type Handler struct {
	svc            Services
	store          Pinger
	logger         logging.Logger
	uploadMaxBytes int64
}

func NewHandler(svc Services, store Pinger, logger logging.Logger, uploadMaxBytes int64) *Handler {
	return &Handler{svc: svc, store: store, logger: logger.With("module", "http"), uploadMaxBytes: uploadMaxBytes}
}

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(handler.logger))
	r.Use(loggingMiddleware(handler.logger))

	r.Get("/", handler.landing)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", handler.ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/register", func(r chi.Router) {
			r.Get("/installation/options", handler.installationOptions)
			r.Post("/installation", handler.registerInstallation)
			r.Post("/mobility", handler.registerMobility)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handler.login)

			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Post("/logout", handler.logout)
				r.Get("/dashboard", handler.dashboard)
				r.Get("/installations/{id}/attachments", handler.listAttachments)
				r.Patch("/installations/{id}/status", handler.updateInstallationStatus)
				r.Patch("/installations/{id}/date", handler.rescheduleInstallation)
				r.Patch("/mobility-accounts/{id}/status", handler.updateAccountStatus)
			})
		})
	})
	return r
}

type link struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

func (h *Handler) landing(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{
		"name": "Site Registration Portal",
		"forms": []link{
			{Name: "installation", Method: http.MethodPost, Path: "/api/register/installation"},
			{Name: "mobility", Method: http.MethodPost, Path: "/api/register/mobility"},
		},
		"admin": link{Name: "login", Method: http.MethodPost, Path: "/api/admin/login"},
	})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "store not ready", "error", err)
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "store unavailable")
		return
	}
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fields forms.ValidationErrors
	if errors.As(err, &fields) {
		writeValidationError(w, fields)
		return
	}
	status, code, msg := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeError(w, status, code, msg)
}
