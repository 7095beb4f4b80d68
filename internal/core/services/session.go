package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
	"github.com/shubhraaj/sitecms/internal/logger"
)

// Ensure SessionManager implements the interfaces.
var (
	_ driving.SessionService = (*SessionManager)(nil)
	_ driven.TokenProvider   = (*SessionManager)(nil)
)

// SessionManager owns the admin credential stored in the local cache.
// It also serves as the token provider for authenticated gateway calls.
type SessionManager struct {
	cache    driven.ContentCache
	gateway  driven.ContentGateway
	notifier *Notifier
	log      zerolog.Logger
}

// NewSessionManager creates a session manager.
// The notifier should be the content store's so views bound to auth state
// re-render on login and logout.
func NewSessionManager(cache driven.ContentCache, gateway driven.ContentGateway, notifier *Notifier) *SessionManager {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &SessionManager{
		cache:    cache,
		gateway:  gateway,
		notifier: notifier,
		log:      logger.WithComponent("session"),
	}
}

// SetGateway attaches the gateway after construction.
// The HTTP gateway needs the session manager as its token provider, so one
// of the two must be wired late.
func (m *SessionManager) SetGateway(gateway driven.ContentGateway) {
	m.gateway = gateway
}

// Login exchanges credentials for a token and stores it.
// It does not pull content.
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}

	token, err := m.gateway.Login(ctx, username, password)
	if err != nil {
		var netErr *domain.NetworkError
		if errors.As(err, &netErr) {
			return fmt.Errorf("login: %w", err)
		}
		return &domain.AuthError{Message: err.Error(), Err: err}
	}
	if token == "" {
		return &domain.AuthError{Message: "invalid login response"}
	}

	if err := m.cache.WriteCredential(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	m.log.Debug().Str("user", username).Msg("logged in")
	m.notifier.Notify()
	return nil
}

// Logout clears the stored token. It is a no-op when already logged out.
func (m *SessionManager) Logout(ctx context.Context) error {
	if !m.IsAuthenticated(ctx) {
		return nil
	}

	if err := m.cache.ClearCredential(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}

	m.log.Debug().Msg("logged out")
	m.notifier.Notify()
	return nil
}

// IsAuthenticated reports whether a token is stored.
func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.cache.ReadCredential(ctx)
	return err == nil && token != ""
}

// GetToken returns the stored token, or "" when logged out.
func (m *SessionManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.cache.ReadCredential(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return token, nil
}

// Info describes the stored token. Claims are parsed without verifying the
// signature, for display only.
func (m *SessionManager) Info(ctx context.Context) domain.SessionInfo {
	token, err := m.cache.ReadCredential(ctx)
	if err != nil || token == "" {
		return domain.SessionInfo{}
	}

	info := domain.SessionInfo{Authenticated: true}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		m.log.Debug().Err(err).Msg("stored token is not a readable JWT")
		return info
	}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		if name, ok := claims["username"].(string); ok {
			info.Subject = name
		}
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}
