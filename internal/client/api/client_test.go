package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "code": code, "message": msg})
}

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestLoginStoresToken(t *testing.T) {
	expires := time.Date(2026, time.October, 15, 18, 0, 0, 0, time.UTC)
	var sawAuth string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["password"] != "s3cret" {
				writeErr(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
				return
			}
			writeData(w, http.StatusOK, map[string]any{"token": "tok-1", "expires_at": expires})
		case "/api/admin/logout":
			sawAuth = r.Header.Get(common.AuthorizationHeader)
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, `{"status":"success","message":"logged out"}`)
		}
	})
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.io", "nope")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, c.LoggedIn())

	got, err := c.Login(ctx, "a@b.io", "s3cret")
	require.NoError(t, err)
	assert.True(t, got.Equal(expires))
	assert.True(t, c.LoggedIn())

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, "Bearer tok-1", sawAuth)
	assert.False(t, c.LoggedIn())
	assert.NoError(t, c.Logout(ctx), "logout without a session is a no-op")
}

func TestInstallationsAndAccounts(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("status"))
		switch r.URL.Query().Get("view") {
		case "installations":
			writeData(w, http.StatusOK, map[string]any{
				"view":                "installations",
				"installations":       []models.Installation{{ID: "i1", Status: models.InstallationPending}},
				"installation_counts": models.InstallationCounts{Total: 1, Pending: 1},
				"account_counts":      models.AccountCounts{Total: 0},
			})
		case "mobility":
			writeData(w, http.StatusOK, map[string]any{"view": "mobility"})
		}
	})
	ctx := context.Background()

	insts, err := c.Installations(ctx)
	require.NoError(t, err)
	require.Len(t, insts, 1)
	assert.Equal(t, "i1", insts[0].ID)

	accs, err := c.MobilityAccounts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, accs)
	assert.Empty(t, accs)
}

func TestMutations(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/admin/installations/i1/status":
			assert.Equal(t, http.MethodPatch, r.Method)
			writeData(w, http.StatusOK, models.Installation{ID: "i1", Status: models.InstallationStatus(body["status"])})
		case "/api/admin/mobility-accounts/a1/status":
			writeData(w, http.StatusOK, models.MobilityAccount{ID: "a1", Status: models.AccountStatus(body["status"])})
		case "/api/admin/installations/i1/date":
			assert.Equal(t, "2026-10-03", body["from"])
			to, _ := models.ParseDate(body["to"])
			writeData(w, http.StatusOK, map[string]any{
				"installation": models.Installation{ID: "i1", EstimatedInstallDate: to},
				"changed":      body["from"] != body["to"],
			})
		case "/api/admin/installations/ghost/status":
			writeErr(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		case "/api/admin/installations/i1/attachments":
			writeData(w, http.StatusOK, []models.Attachment{{FileName: "p.pdf", DownloadURL: "https://files/p"}})
		}
	})
	ctx := context.Background()

	inst, err := c.UpdateInstallationStatus(ctx, "i1", models.InstallationCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.InstallationCompleted, inst.Status)

	acc, err := c.UpdateAccountStatus(ctx, "a1", models.AccountInactive)
	require.NoError(t, err)
	assert.Equal(t, models.AccountInactive, acc.Status)

	oct3 := models.NewDate(2026, time.October, 3)
	oct9 := models.NewDate(2026, time.October, 9)
	moved, changed, err := c.Reschedule(ctx, "i1", oct3, oct9)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, oct9, moved.EstimatedInstallDate)

	_, err = c.UpdateInstallationStatus(ctx, "ghost", models.InstallationCompleted)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	atts, err := c.Attachments(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "https://files/p", atts[0].DownloadURL)
}

func TestServerUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, 200*time.Millisecond)
	_, err := c.Installations(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		writeData(w, http.StatusOK, "ok")
	})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNonJSONError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := c.Installations(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestErrorIs(t *testing.T) {
	assert.ErrorIs(t, &Error{StatusCode: http.StatusTooManyRequests}, common.ErrLockedOut)
	assert.ErrorIs(t, &Error{StatusCode: http.StatusBadRequest, Code: "INVALID_STATUS"}, common.ErrInvalidStatus)
	assert.ErrorIs(t, &Error{StatusCode: http.StatusBadRequest, Code: "INVALID_DATE"}, common.ErrInvalidDate)
	assert.ErrorIs(t, &Error{StatusCode: http.StatusBadRequest, Code: "VALIDATION_ERROR"}, common.ErrorValidation)
	assert.NotErrorIs(t, &Error{StatusCode: http.StatusInternalServerError}, common.ErrorNotFound)
}
