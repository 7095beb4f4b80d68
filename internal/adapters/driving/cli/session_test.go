package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

func TestLogin_Flags(t *testing.T) {
	session := &mockSessionService{}
	useServices(t, &Services{Session: session})

	out, err := run(t, "", "login", "-u", "admin", "-p", "secret")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in.")
	assert.Equal(t, "admin", session.username)
	assert.Equal(t, "secret", session.password)
}

func TestLogin_Prompts(t *testing.T) {
	session := &mockSessionService{}
	useServices(t, &Services{Session: session})

	out, err := run(t, "admin\nsecret\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Username: ")
	assert.Contains(t, out, "Password: ")
	assert.Equal(t, "admin", session.username)
	assert.Equal(t, "secret", session.password)
}

func TestLogin_MissingCredentials(t *testing.T) {
	useServices(t, &Services{Session: &mockSessionService{}})

	_, err := run(t, "", "login")

	assert.ErrorContains(t, err, "username and password are required")
}

func TestLogin_Rejected(t *testing.T) {
	session := &mockSessionService{loginErr: &domain.AuthError{Message: "Invalid credentials"}}
	useServices(t, &Services{Session: session})

	_, err := run(t, "", "login", "-u", "admin", "-p", "bad")

	assert.EqualError(t, err, "login failed: Invalid credentials")
}

func TestLogin_Offline(t *testing.T) {
	useServices(t, &Services{Session: &mockSessionService{loginErr: domain.ErrOffline}})

	_, err := run(t, "", "login", "-u", "admin", "-p", "pw")

	assert.ErrorIs(t, err, domain.ErrOffline)
}

func TestLogout(t *testing.T) {
	session := &mockSessionService{}
	useServices(t, &Services{Session: session})

	out, err := run(t, "", "logout")

	require.NoError(t, err)
	assert.Equal(t, 1, session.logouts)
	assert.Contains(t, out, "Logged out.")
}

func TestSessionCommands_RequireService(t *testing.T) {
	useServices(t, &Services{})

	_, err := run(t, "", "logout")
	assert.ErrorContains(t, err, "session service not configured")

	_, err = run(t, "", "login", "-u", "a", "-p", "b")
	assert.ErrorContains(t, err, "session service not configured")
}
