// Package oauth provides the three capability implementations behind
// the authorization-code flow: a client registrar, an in-memory
// authorization-code map, and a signing token issuer, plus the thin
// endpoint driver that binds them for the authorize and token requests.
package oauth

import (
	"errors"
	"time"
)

type TokenType string

const TypeBearer TokenType = "Bearer"

// Grant is an authorization decision binding a client, a scope and an
// authenticated subject. It is exchanged for a token exactly once.
type Grant struct {
	OwnerID     string
	ClientID    string
	Scope       string
	RedirectURI string
	ExpireAt    time.Time
}

// IssuedToken is the product of redeeming a grant. Refresh stays empty;
// refresh tokens are not supported.
type IssuedToken struct {
	Token   string
	Refresh string
	Until   time.Time
	Type    TokenType
}

// ClientURL is a client id paired with the redirect URI the caller
// asked for, if any.
type ClientURL struct {
	ClientID    string
	RedirectURI string
}

// BoundClient is a client whose redirect target has been validated.
type BoundClient struct {
	ClientID    string
	RedirectURI string
}

// PreGrant is the negotiated client/redirect/scope triple awaiting
// owner consent.
type PreGrant struct {
	ClientID    string
	RedirectURI string
	Scope       string
}

// Registrar validates client identity and redirect targets.
type Registrar interface {
	BoundRedirect(bound ClientURL) (BoundClient, error)
	Negotiate(bound BoundClient, scope string) (PreGrant, error)
	Check(clientID string, passphrase string) error
}

// Authorizer stores pending grants under single-use authorization
// codes.
type Authorizer interface {
	Authorize(g Grant) (string, error)
	Extract(code string) (Grant, bool)
}

// Issuer mints bearer tokens for redeemed grants. Implementations
// without refresh or introspection support fail those calls with
// ErrUnsupported, deterministically.
type Issuer interface {
	Issue(g Grant) (IssuedToken, error)
	Refresh(refreshToken string, g Grant) (IssuedToken, error)
	RecoverToken(token string) (Grant, error)
	RecoverRefresh(refreshToken string) (Grant, error)
}

// ErrUnspecified is returned for every registrar failure. Unknown
// client, unmatched redirect and bad passphrase are indistinguishable
// on purpose.
var ErrUnspecified = errors.New("unknown client, redirect uri or credentials")

// ErrUnsupported marks capabilities this issuer permanently lacks.
var ErrUnsupported = errors.New("capability not supported")
