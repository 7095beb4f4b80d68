package driving

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// SessionService owns the admin credential lifecycle.
type SessionService interface {
	// Login exchanges credentials for a token and stores it.
	// Returns *domain.AuthError when the server rejects the login.
	Login(ctx context.Context, username, password string) error

	// Logout clears the stored token. Calling it while logged out is a no-op.
	Logout(ctx context.Context) error

	// IsAuthenticated reports whether a token is stored.
	// The token is not validated locally.
	IsAuthenticated(ctx context.Context) bool

	// Info describes the stored token for display.
	Info(ctx context.Context) domain.SessionInfo
}
