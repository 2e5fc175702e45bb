// Package session holds the authentication state the route guard consumes:
// a loading flag while validation is in flight, an authenticated flag tied to
// the stored token, and a server-error flag for failures that are not the
// session's fault.
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/painel-dev/painelctl/internal/cli/auth"
	"github.com/painel-dev/painelctl/internal/cli/client"
)

// State is a point-in-time snapshot of the session flags.
type State struct {
	Loading       bool
	Authenticated bool
	ServerError   bool
	Admin         *client.Admin
}

// Manager populates session state by validating the stored token against the
// server. Register Invalidated as the client's invalidation hook so a
// mid-session 401/403 flips the authenticated flag in the same request cycle
// as the token deletion.
type Manager struct {
	client *client.Client
	store  auth.TokenStore
	logger zerolog.Logger
	state  State
}

// NewManager creates a session manager over the given client and token store.
func NewManager(c *client.Client, store auth.TokenStore, logger zerolog.Logger) *Manager {
	return &Manager{
		client: c,
		store:  store,
		logger: logger,
	}
}

// Refresh loads the stored token and validates it. No token means
// unauthenticated; a 401/403 from the server means unauthenticated (the
// client has already cleared the token); any other validation failure raises
// the server-error flag instead.
func (m *Manager) Refresh(ctx context.Context) {
	m.state = State{Loading: true}

	token, err := m.store.LoadToken()
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			m.logger.Warn().Err(err).Msg("Failed to load stored token")
		}
		m.state = State{}
		return
	}

	admin, err := m.client.ValidateToken(ctx, token)
	if err != nil {
		if client.IsSessionInvalid(err) {
			m.state = State{}
			return
		}
		m.logger.Warn().Err(err).Msg("Token validation failed")
		m.state = State{ServerError: true}
		return
	}

	m.state = State{Authenticated: true, Admin: admin}
}

// Invalidated is the client's invalidation hook: the token is already gone,
// so the authenticated flag must drop with it.
func (m *Manager) Invalidated(status int) {
	m.logger.Debug().Int("status", status).Msg("Session invalidated")
	m.state = State{}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() State {
	return m.state
}
