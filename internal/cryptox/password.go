// Package cryptox wraps bcrypt for the admin credential check.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password. A non-positive cost
// selects bcrypt.DefaultCost.
func HashPassword(password []byte, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword reports whether password matches the bcrypt hash.
// A malformed hash is reported as an error rather than as a mismatch.
func ComparePassword(hash string, password []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// WipeBytes zeroes b in place. Used on passwords read from the terminal.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
