package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"playbud-discovery/internal/logging"
	"playbud-discovery/internal/providers"
)

// ErrNoSession is returned when an operation needs an active identity and
// none has been established.
var ErrNoSession = errors.New("session: no active identity")

// Identity is the resolved login the booking workflow acts on behalf of.
type Identity struct {
	SessionID   string
	UserID      string
	Name        string
	Email       string
	AccessToken string
}

// DisplayName returns the best human label for the identity.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// Manager resolves and caches the current identity against the upstream
// auth endpoints. It is safe for concurrent use.
type Manager struct {
	auth   providers.AuthProvider
	logger *slog.Logger
	newID  func() string

	mu         sync.RWMutex
	current    *Identity
	refreshTok string
}

// NewManager constructs a Manager over the given auth provider.
func NewManager(auth providers.AuthProvider, logger *slog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Init validates the token pair against the upstream identity endpoint and
// establishes the session. It replaces any previous identity.
func (m *Manager) Init(ctx context.Context, accessToken, refreshToken string) (Identity, error) {
	user, err := m.auth.Me(ctx, accessToken)
	if err != nil {
		return Identity{}, err
	}

	ident := m.identityFor(user, accessToken)

	m.mu.Lock()
	m.current = &ident
	m.refreshTok = refreshToken
	m.mu.Unlock()

	m.logInfo("session established", logging.FieldRequestID, ident.SessionID)
	return ident, nil
}

// Refresh exchanges the stored refresh token for a new access token and
// re-resolves the identity. The session id is preserved across refreshes.
func (m *Manager) Refresh(ctx context.Context) (Identity, error) {
	m.mu.RLock()
	refreshTok := m.refreshTok
	prev := m.current
	m.mu.RUnlock()

	if prev == nil || refreshTok == "" {
		return Identity{}, ErrNoSession
	}

	pair, err := m.auth.RefreshToken(ctx, refreshTok)
	if err != nil {
		return Identity{}, err
	}
	user, err := m.auth.Me(ctx, pair.AccessToken)
	if err != nil {
		return Identity{}, err
	}

	ident := m.identityFor(user, pair.AccessToken)
	ident.SessionID = prev.SessionID

	m.mu.Lock()
	m.current = &ident
	if pair.RefreshToken != "" {
		m.refreshTok = pair.RefreshToken
	}
	m.mu.Unlock()

	return ident, nil
}

// Clear drops the current identity and tokens.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.current = nil
	m.refreshTok = ""
	m.mu.Unlock()
}

// Current returns the active identity, if any.
func (m *Manager) Current() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return Identity{}, false
	}
	return *m.current, true
}

func (m *Manager) identityFor(user providers.AuthUser, accessToken string) Identity {
	ident := Identity{
		SessionID:   m.newID(),
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: accessToken,
	}
	if user.Name != nil {
		ident.Name = *user.Name
	}
	return ident
}

func (m *Manager) logInfo(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}
