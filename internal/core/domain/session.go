package domain

import "time"

// SessionInfo describes the stored admin credential for display.
// Claims are read without verifying the signature; the server remains
// the only authority on whether the token is valid.
type SessionInfo struct {
	Authenticated bool
	Subject       string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Expired returns true if the token carries an expiry in the past.
func (s SessionInfo) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
