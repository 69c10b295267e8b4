package session

import (
	"context"
	"sync"
	"time"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
)

const (
	// LoginTTL is the window between hitting the authorize endpoint
	// unauthenticated and completing the login.
	LoginTTL = 5 * time.Minute

	// DefaultUserTTL bounds a user session when no explicit TTL is
	// configured.
	DefaultUserTTL = 24 * time.Hour

	sweepInterval = time.Minute
)

// Manager owns both session kinds: short-lived login sessions (always
// in-memory) and user sessions (behind a Store). No lock is ever held
// across a Store call that might touch the network.
type Manager struct {
	mu    sync.Mutex
	login map[string]LoginSession

	users    Store
	loginTTL time.Duration
	userTTL  time.Duration
}

func NewManager(users Store, userTTL time.Duration) *Manager {
	if userTTL <= 0 {
		userTTL = DefaultUserTTL
	}
	return &Manager{
		login:    make(map[string]LoginSession),
		users:    users,
		loginTTL: LoginTTL,
		userTTL:  userTTL,
	}
}

// NewLoginSession mints a login session capturing the original authorize
// query.
func (m *Manager) NewLoginSession(query string) (LoginSession, error) {
	sid, err := GenerateID()
	if err != nil {
		return LoginSession{}, err
	}

	s := LoginSession{
		Sid:      sid,
		Query:    query,
		ExpireAt: time.Now().Add(m.loginTTL),
	}

	m.mu.Lock()
	m.login[sid] = s
	m.mu.Unlock()

	return s, nil
}

// TakeLoginSession removes and returns the session, at most once.
// Expired sessions are treated as absent and dropped on the spot.
func (m *Manager) TakeLoginSession(sid string) (LoginSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.login[sid]
	if !ok {
		return LoginSession{}, false
	}
	delete(m.login, sid)

	if s.Expired(time.Now()) {
		return LoginSession{}, false
	}
	return s, true
}

// PurgeExpired drops stale login sessions and reports how many went.
func (m *Manager) PurgeExpired() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for sid, s := range m.login {
		if s.Expired(now) {
			delete(m.login, sid)
			n++
		}
	}
	return n
}

// Run sweeps expired login sessions until ctx is cancelled. Expiry is
// also checked on every read, so the sweep only bounds memory held by
// abandoned logins.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.PurgeExpired(); n > 0 {
				logger.Info("purged expired login sessions", map[string]any{
					"count": n,
				})
			}
		}
	}
}

// NewUserSession mints a session for an authenticated subject.
func (m *Manager) NewUserSession(ctx context.Context, uid model.Uid) (UserSession, error) {
	sid, err := GenerateID()
	if err != nil {
		return UserSession{}, err
	}

	s := UserSession{
		Sid:       sid,
		Uid:       uid,
		ExpiresAt: time.Now().Add(m.userTTL),
	}
	if err := m.users.Create(ctx, s); err != nil {
		return UserSession{}, err
	}
	return s, nil
}

// GetUserSession returns the session bound to sid, or nil if there is
// none or it has expired.
func (m *Manager) GetUserSession(ctx context.Context, sid string) (*UserSession, error) {
	if sid == "" {
		return nil, nil
	}
	return m.users.Get(ctx, sid)
}

// DeleteUserSession revokes a session; deleting an unknown sid is a
// no-op.
func (m *Manager) DeleteUserSession(ctx context.Context, sid string) error {
	return m.users.Delete(ctx, sid)
}
