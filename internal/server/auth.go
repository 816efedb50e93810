package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// AdminPasswordHeader carries the admin secret.
const AdminPasswordHeader = "X-Admin-Password"

var (
	// ErrUnauthorized is returned when the request carries no valid admin credential.
	ErrUnauthorized = errors.New("admin credentials required")
	// ErrAdminDisabled is returned when no admin secret is configured.
	ErrAdminDisabled = errors.New("admin access is disabled")
)

// Authorizer decides whether a request may use the admin surface.
type Authorizer interface {
	Authorize(r *http.Request) error
}

// SharedSecret authorizes requests that present one configured password,
// either in X-Admin-Password or as a bearer token.
type SharedSecret struct {
	secret []byte
}

// NewSharedSecret creates an authorizer for secret. An empty secret rejects
// every request with ErrAdminDisabled.
func NewSharedSecret(secret string) *SharedSecret {
	return &SharedSecret{secret: []byte(secret)}
}

func (s *SharedSecret) Authorize(r *http.Request) error {
	if len(s.secret) == 0 {
		return ErrAdminDisabled
	}
	got := r.Header.Get(AdminPasswordHeader)
	if got == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			got = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}
	if got == "" || subtle.ConstantTimeCompare([]byte(got), s.secret) != 1 {
		return ErrUnauthorized
	}
	return nil
}
