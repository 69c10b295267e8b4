package session

import (
	"context"
	"time"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
)

// LoginSession bridges an anonymous visit to the authorize endpoint and
// the login that follows. It captures the original query string so the
// browser can be sent back into the flow after authentication, and it
// is redeemable exactly once within its expiry window.
type LoginSession struct {
	Sid      string
	Query    string
	ExpireAt time.Time
}

func (s LoginSession) Expired(now time.Time) bool {
	return now.After(s.ExpireAt)
}

// UserSession binds a session identifier to an authenticated subject.
type UserSession struct {
	Sid       string    `json:"sid"`
	Uid       model.Uid `json:"uid"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines how user sessions are stored and retrieved. Get returns
// (nil, nil) for absent or expired sessions.
type Store interface {
	Create(ctx context.Context, s UserSession) error
	Get(ctx context.Context, sid string) (*UserSession, error)
	Delete(ctx context.Context, sid string) error
}
