package session

//go:generate mockgen -destination=../../mocks/mock_session_store.go -package=mocks github.com/rizkypriyadi/authkit/internal/auth/domain SessionStore

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
)

// State is the single authentication state of a client process.
// IsAuthenticated is true exactly when User is non-nil.
type State struct {
	User            *domain.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Manager is a single-writer container for the process session state. It
// persists the state through a SessionStore and restores it on startup.
// Restoration failures never reach the caller; they degrade to an anonymous
// session.
type Manager struct {
	mu     sync.RWMutex
	state  State
	store  domain.SessionStore
	logger zerolog.Logger
	subs   []func(State)
}

// NewManager starts in the loading state; the caller is expected to call
// Restore immediately.
func NewManager(store domain.SessionStore, logger zerolog.Logger) *Manager {
	return &Manager{
		state:  State{IsLoading: true},
		store:  store,
		logger: logger,
	}
}

// Restore attempts to load a previously persisted session. A missing,
// partial or unparseable record degrades to the anonymous state and the
// leftovers are cleared.
func (m *Manager) Restore(ctx context.Context) {
	rec, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("discarding corrupt session record")
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.Warn().Err(clearErr).Msg("failed to clear corrupt session record")
		}
		rec = nil
	}

	m.mu.Lock()
	if rec != nil {
		user := rec.User
		m.state = State{User: &user, IsAuthenticated: true}
	} else {
		m.state = State{}
	}
	m.notifyLocked()
	m.mu.Unlock()
}

// CommitLogin persists the session record first, then flips the in-memory
// state. A crash between the two steps leaves either a complete record or
// none visible to the next Restore.
func (m *Manager) CommitLogin(ctx context.Context, tokens domain.TokenPair, user domain.User) error {
	rec := &domain.SessionRecord{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return err
	}

	m.mu.Lock()
	u := user
	m.state = State{User: &u, IsAuthenticated: true}
	m.notifyLocked()
	m.mu.Unlock()

	return nil
}

// CommitLogout erases all persisted session data and resets to the
// anonymous state.
func (m *Manager) CommitLogout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}

	m.mu.Lock()
	m.state = State{}
	m.notifyLocked()
	m.mu.Unlock()
}

// PatchUser merges a partial update into the current identity, builds a new
// value and swaps it in, then re-persists. It is a no-op while
// unauthenticated and never changes the authentication flag.
func (m *Manager) PatchUser(ctx context.Context, patch domain.UserPatch) {
	m.mu.Lock()
	if m.state.User == nil {
		m.mu.Unlock()
		return
	}
	updated := m.state.User.WithPatch(patch)
	m.state.User = &updated
	current := m.state
	m.notifyLocked()
	m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if err != nil || rec == nil {
		m.logger.Warn().Err(err).Msg("could not re-persist patched user")
		return
	}
	rec.User = *current.User
	if err := m.store.Save(ctx, rec); err != nil {
		m.logger.Warn().Err(err).Msg("could not re-persist patched user")
	}
}

// SetError records a user-displayable message; the empty string clears it.
func (m *Manager) SetError(msg string) {
	m.mu.Lock()
	m.state.Error = msg
	m.notifyLocked()
	m.mu.Unlock()
}

// SetLoading flags an in-flight login, registration or restore.
func (m *Manager) SetLoading(loading bool) {
	m.mu.Lock()
	m.state.IsLoading = loading
	m.notifyLocked()
	m.mu.Unlock()
}

// State returns a snapshot of the current state. The identity is copied so
// callers cannot mutate the stored value.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.state
	if m.state.User != nil {
		u := *m.state.User
		out.User = &u
	}
	return out
}

// Subscribe registers an observer invoked after every state change.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

func (m *Manager) notifyLocked() {
	for _, fn := range m.subs {
		fn(m.state)
	}
}
