package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeySession   ctxKey = "session"
	ctxKeyTokenRaw  ctxKey = "token_raw"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(common.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID)))
	})
}

func recoverMiddleware(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "panic in handler", "panic", rec, "request_id", requestIDFromContext(r.Context()))
					writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"request_id", requestIDFromContext(r.Context()),
			)
		})
	}
}

func bearerTokenFromHeader(header string) (string, error) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", common.ErrorUnauthorized
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	return token, nil
}

func contextWithSession(ctx context.Context, session auth.Session, token string) context.Context {
	ctx = context.WithValue(ctx, ctxKeySession, session)
	ctx = context.WithValue(ctx, ctxKeyTokenRaw, token)
	return ctx
}

func sessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(auth.Session)
	return s, ok
}

func tokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeyTokenRaw).(string)
	return s
}

func requestIDFromContext(ctx context.Context) string {
	v := ctx.Value(ctxKeyRequestID)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, common.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_STATUS", err.Error()
	case errors.Is(err, common.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials"
	case errors.Is(err, common.ErrLockedOut):
		return http.StatusTooManyRequests, "LOCKED_OUT", err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, common.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "file storage unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}
