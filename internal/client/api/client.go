// Package api is the admin console's client for the portal's JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

var (
	// ErrUnavailable is returned when the server cannot be reached.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is an error response of the API.
type Error struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches the shared sentinel errors by HTTP status and code.
func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case common.ErrorNotFound:
		return e.StatusCode == http.StatusNotFound
	case common.ErrLockedOut:
		return e.StatusCode == http.StatusTooManyRequests
	case common.ErrorValidation:
		return e.Code == "VALIDATION_ERROR"
	case common.ErrInvalidStatus:
		return e.Code == "INVALID_STATUS"
	case common.ErrInvalidDate:
		return e.Code == "INVALID_DATE"
	}
	return false
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to one portal server on behalf of one admin session.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LoggedIn reports whether the client holds a session token.
func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// Ping checks that the server answers its liveness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Login exchanges the admin credential for a session token kept by c.
func (c *Client) Login(ctx context.Context, email, password string) (time.Time, error) {
	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/login", map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return time.Time{}, err
	}
	c.setToken(resp.Token)
	return resp.ExpiresAt, nil
}

// Logout revokes the session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if !c.LoggedIn() {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil)
	c.setToken("")
	return err
}

type dashboard struct {
	Installations    []models.Installation    `json:"installations"`
	MobilityAccounts []models.MobilityAccount `json:"mobility_accounts"`
}

func (c *Client) dashboard(ctx context.Context, view string) (*dashboard, error) {
	q := url.Values{"view": {view}, "status": {common.StatusAll}}
	var d dashboard
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard?"+q.Encode(), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Installations returns every installation, newest first.
func (c *Client) Installations(ctx context.Context) ([]models.Installation, error) {
	d, err := c.dashboard(ctx, "installations")
	if err != nil {
		return nil, err
	}
	if d.Installations == nil {
		d.Installations = []models.Installation{}
	}
	return d.Installations, nil
}

// MobilityAccounts returns every mobility account, newest first.
func (c *Client) MobilityAccounts(ctx context.Context) ([]models.MobilityAccount, error) {
	d, err := c.dashboard(ctx, "mobility")
	if err != nil {
		return nil, err
	}
	if d.MobilityAccounts == nil {
		d.MobilityAccounts = []models.MobilityAccount{}
	}
	return d.MobilityAccounts, nil
}

func (c *Client) UpdateInstallationStatus(ctx context.Context, id string, status models.InstallationStatus) (*models.Installation, error) {
	var inst models.Installation
	err := c.do(ctx, http.MethodPatch, "/api/admin/installations/"+url.PathEscape(id)+"/status", map[string]string{"status": string(status)}, &inst)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (c *Client) UpdateAccountStatus(ctx context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error) {
	var acc models.MobilityAccount
	err := c.do(ctx, http.MethodPatch, "/api/admin/mobility-accounts/"+url.PathEscape(id)+"/status", map[string]string{"status": string(status)}, &acc)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Reschedule moves an installation between days. changed is false when
// the server found nothing to do.
func (c *Client) Reschedule(ctx context.Context, id string, from, to models.Date) (inst *models.Installation, changed bool, err error) {
	var resp struct {
		Installation *models.Installation `json:"installation"`
		Changed      bool                 `json:"changed"`
	}
	body := map[string]models.Date{"from": from, "to": to}
	if err := c.do(ctx, http.MethodPatch, "/api/admin/installations/"+url.PathEscape(id)+"/date", body, &resp); err != nil {
		return nil, false, err
	}
	return resp.Installation, resp.Changed, nil
}

// Attachments lists the files of an installation.
func (c *Client) Attachments(ctx context.Context, id string) ([]models.Attachment, error) {
	var list []models.Attachment
	if err := c.do(ctx, http.MethodGet, "/api/admin/installations/"+url.PathEscape(id)+"/attachments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
