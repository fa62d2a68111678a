// Package auth issues and verifies admin session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identify one admin session: ID is the session id checked against
// the revocation store and Subject is the admin email.
type Claims struct {
	jwt.RegisteredClaims
}

// Session is the verified content of a token.
type Session struct {
	ID        string
	Subject   string
	ExpiresAt time.Time
}

func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, Session, error) {
	now := time.Now()
	s := Session{
		ID:        uuid.NewString(),
		Subject:   subject,
		ExpiresAt: now.Add(validityDuration).Truncate(time.Second),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", Session{}, err
	}

	return tokenString, s, nil
}

func ParseToken(tokenString string, secretKey []byte) (Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, common.ErrTokenExpired
		}
		return Session{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" {
		return Session{}, common.ErrInvalidToken
	}

	return Session{ID: claims.ID, Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
