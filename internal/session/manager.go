package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fooddash-client/internal/api"
	"fooddash-client/internal/logger"
	"fooddash-client/internal/tokenstore"

	"go.uber.org/zap"
)

// Store keys match what the mobile builds used in their device storage.
const (
	customerTokenKey = "token"
	adminTokenKey    = "adminToken"
)

// Manager owns the identity/token pair for the process lifetime. It
// implements api.TokenSource, so every request issued through the shared
// client carries whatever token is currently committed — and nothing after
// logout.
type Manager struct {
	auth     Authenticator
	store    tokenstore.Store
	role     Role
	storeKey string

	mu       sync.Mutex
	busy     bool
	state    State
	identity Identity
	token    string
}

func NewManager(auth Authenticator, store tokenstore.Store, role Role) *Manager {
	key := customerTokenKey
	if role == RoleAdmin {
		key = adminTokenKey
	}
	return &Manager{
		auth:     auth,
		store:    store,
		role:     role,
		storeKey: key,
		state:    StateUnknown,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the committed identity; ok is false unless authenticated.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.state == StateAuthenticated
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Bootstrap resolves the persisted token into a session state at startup.
// Every failure path lands in Anonymous; the UI only ever needs the state.
func (m *Manager) Bootstrap(ctx context.Context) State {
	log := logger.FromCtx(ctx).With(zap.String("role", string(m.role)))

	m.setState(StateLoading)

	token, err := m.store.Get(ctx, m.storeKey)
	if err != nil {
		log.Error("failed to read stored token", zap.Error(err))
		return m.setAnonymous()
	}
	if token == "" {
		return m.setAnonymous()
	}

	if tokenExpired(token) {
		log.Info("stored token expired, discarding")
		if err := m.store.Remove(ctx, m.storeKey); err != nil {
			log.Warn("failed to discard expired token", zap.Error(err))
		}
		return m.setAnonymous()
	}

	ident, err := m.auth.Profile(ctx, token)
	if err != nil {
		log.Warn("profile fetch failed", zap.Error(err))
		// Only a rejected token gets discarded; a network failure keeps it
		// for the next start.
		if errors.Is(err, api.ErrInvalidCredentials) {
			if rmErr := m.store.Remove(ctx, m.storeKey); rmErr != nil {
				log.Warn("failed to discard rejected token", zap.Error(rmErr))
			}
		}
		return m.setAnonymous()
	}

	m.mu.Lock()
	m.token = token
	m.identity = ident
	m.state = StateAuthenticated
	m.mu.Unlock()

	log.Info("session restored", zap.String("user_id", ident.ID))
	return StateAuthenticated
}

// Login authenticates and commits the resulting credentials. Token
// persistence and the in-memory identity either both happen or neither does:
// nothing is published until the store write succeeded.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	log := logger.FromCtx(ctx).With(
		zap.String("role", string(m.role)),
		zap.String("email", email),
	)

	creds, err := m.auth.Login(ctx, email, password)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return err
	}

	if err := m.store.Set(ctx, m.storeKey, creds.Token); err != nil {
		log.Error("failed to persist token", zap.Error(err))
		return fmt.Errorf("persist token: %w", err)
	}

	m.publish(creds)
	log.Info("login succeeded", zap.String("user_id", creds.Identity.ID))
	return nil
}

// Register creates an account and logs it in, with the same commit contract
// as Login. The password confirmation is checked before anything else runs.
func (m *Manager) Register(ctx context.Context, name, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if m.role == RoleAdmin {
		return ErrRegistrationUnsupported
	}

	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	log := logger.FromCtx(ctx).With(zap.String("email", email))

	creds, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		log.Warn("registration failed", zap.Error(err))
		return err
	}

	if err := m.store.Set(ctx, m.storeKey, creds.Token); err != nil {
		log.Error("failed to persist token", zap.Error(err))
		return fmt.Errorf("persist token: %w", err)
	}

	m.publish(creds)
	log.Info("registration succeeded", zap.String("user_id", creds.Identity.ID))
	return nil
}

// Logout clears the in-memory session unconditionally, then clears the
// store. A store failure comes back to the caller, but from the app's point
// of view the user is logged out either way.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	m.mu.Lock()
	m.token = ""
	m.identity = Identity{}
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.store.Remove(ctx, m.storeKey); err != nil {
		logger.FromCtx(ctx).Warn("failed to clear stored token", zap.Error(err))
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}

func (m *Manager) publish(creds Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = creds.Token
	m.identity = creds.Identity
	m.state = StateAuthenticated
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Manager) setAnonymous() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.identity = Identity{}
	m.state = StateAnonymous
	return StateAnonymous
}

// begin claims the single auth-mutation slot. Login, Register and Logout are
// user-triggered one-at-a-time actions; a second one racing the first gets
// ErrOperationInProgress instead of a corrupted token state.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return ErrOperationInProgress
	}
	m.busy = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}
