package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/cryptox"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/server/auth"
	"github.com/dmitrijs2005/sitereg/internal/server/cache"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
)

// AdminService checks the admin credential and manages admin sessions.
type AdminService struct {
	email        string
	passwordHash string

	jwtSecret       []byte
	sessionValidity time.Duration
	maxAttempts     int
	lockoutWindow   time.Duration
	lockouts        cache.LockoutStore
	revocations     cache.RevocationStore
	logger          logging.Logger
	now             func() time.Time
}

// NewAdminService builds the service from cfg. A plain AdminPassword is
// hashed once at start-up; AdminPasswordHash wins when both are set.
func NewAdminService(cfg *config.Config, lockouts cache.LockoutStore, revocations cache.RevocationStore, logger logging.Logger) (*AdminService, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		var err error
		hash, err = cryptox.HashPassword([]byte(cfg.AdminPassword), 0)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}

	return &AdminService{
		email:           normalizeEmail(cfg.AdminEmail),
		passwordHash:    hash,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		maxAttempts:     cfg.LoginMaxAttempts,
		lockoutWindow:   cfg.LoginLockoutWindow,
		lockouts:        lockouts,
		revocations:     revocations,
		logger:          logger.With("module", "admin"),
		now:             time.Now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies the credential and returns a signed session token.
// Repeated failures for one email lock it out for the configured window.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, auth.Session, error) {
	key := normalizeEmail(email)
	now := s.now()

	state, err := s.lockouts.Get(ctx, key)
	if err != nil {
		return "", auth.Session{}, fmt.Errorf("lockout lookup: %w", err)
	}
	if state.Locked(now) {
		return "", auth.Session{}, common.ErrLockedOut
	}

	emailOK := subtle.ConstantTimeCompare([]byte(key), []byte(s.email)) == 1
	passwordOK, err := cryptox.ComparePassword(s.passwordHash, []byte(password))
	if err != nil {
		return "", auth.Session{}, fmt.Errorf("compare password: %w", err)
	}

	if !emailOK || !passwordOK {
		state, err := s.lockouts.RecordFailure(ctx, key, now, s.maxAttempts, s.lockoutWindow)
		if err != nil {
			return "", auth.Session{}, fmt.Errorf("record failed login: %w", err)
		}
		s.logger.Warn(ctx, "admin login failed", "failed_count", state.FailedCount)
		if state.Locked(now) {
			return "", auth.Session{}, common.ErrLockedOut
		}
		return "", auth.Session{}, common.ErrorUnauthorized
	}

	if err := s.lockouts.Clear(ctx, key); err != nil {
		return "", auth.Session{}, fmt.Errorf("clear lockout: %w", err)
	}

	token, session, err := auth.GenerateToken(s.email, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return "", auth.Session{}, fmt.Errorf("generate token: %w", err)
	}
	s.logger.Info(ctx, "admin logged in", "session", session.ID)
	return token, session, nil
}

// Authenticate returns the session of a valid, unrevoked token.
func (s *AdminService) Authenticate(ctx context.Context, token string) (auth.Session, error) {
	session, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	revoked, err := s.revocations.IsRevoked(ctx, session.ID)
	if err != nil {
		return auth.Session{}, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return auth.Session{}, fmt.Errorf("%w: session revoked", common.ErrorUnauthorized)
	}
	return session, nil
}

// Logout revokes the session of token. Logging out an expired session is
// a no-op.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	session, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil
		}
		return fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	if err := s.revocations.MarkRevoked(ctx, session.ID, session.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info(ctx, "admin logged out", "session", session.ID)
	return nil
}
