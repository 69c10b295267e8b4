package oauth

import (
	"sync"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
)

// RedirectPolicy captures how a client's redirect target is validated.
// A wildcard policy trusts the caller's stated destination at request
// time; anything else pins the target to the registered URI set.
type RedirectPolicy struct {
	Wildcard   bool
	Primary    string
	Additional []string
}

func ExactRedirect(uri string) RedirectPolicy {
	return RedirectPolicy{Primary: uri}
}

func WildcardRedirect() RedirectPolicy {
	return RedirectPolicy{Wildcard: true}
}

func MultipleRedirects(primary string, additional ...string) RedirectPolicy {
	return RedirectPolicy{Primary: primary, Additional: additional}
}

// Client is a registration request. Passphrase is the plaintext client
// secret for confidential clients; it is hashed on registration and
// never retained. Empty means a public client.
type Client struct {
	ID         string
	Redirects  RedirectPolicy
	Scope      string
	Passphrase string
}

type registeredClient struct {
	redirects RedirectPolicy
	scope     string
	secret    credentials.Credential
	public    bool
}

// ClientRegistry implements Registrar over a static client set
// registered at startup.
type ClientRegistry struct {
	mu      sync.Mutex
	clients map[string]registeredClient
	alg     credentials.Algorithm
}

func NewClientRegistry(alg credentials.Algorithm) *ClientRegistry {
	return &ClientRegistry{
		clients: make(map[string]registeredClient),
		alg:     alg,
	}
}

func (r *ClientRegistry) Register(c Client) error {
	reg := registeredClient{
		redirects: c.Redirects,
		scope:     c.Scope,
		public:    c.Passphrase == "",
	}
	if !reg.public {
		secret, err := credentials.New(c.Passphrase, r.alg)
		if err != nil {
			return err
		}
		reg.secret = secret
	}

	r.mu.Lock()
	r.clients[c.ID] = reg
	r.mu.Unlock()
	return nil
}

// BoundRedirect validates the caller's redirect target against the
// client's policy. A wildcard client must state a redirect URI; a
// pinned client may omit it (the primary applies) or must match one of
// the registered URIs exactly.
func (r *ClientRegistry) BoundRedirect(bound ClientURL) (BoundClient, error) {
	r.mu.Lock()
	client, ok := r.clients[bound.ClientID]
	r.mu.Unlock()
	if !ok {
		return BoundClient{}, ErrUnspecified
	}

	if client.redirects.Wildcard {
		if bound.RedirectURI == "" {
			return BoundClient{}, ErrUnspecified
		}
		return BoundClient{ClientID: bound.ClientID, RedirectURI: bound.RedirectURI}, nil
	}

	if bound.RedirectURI == "" {
		return BoundClient{ClientID: bound.ClientID, RedirectURI: client.redirects.Primary}, nil
	}

	if bound.RedirectURI == client.redirects.Primary {
		return BoundClient{ClientID: bound.ClientID, RedirectURI: bound.RedirectURI}, nil
	}
	for _, uri := range client.redirects.Additional {
		if bound.RedirectURI == uri {
			return BoundClient{ClientID: bound.ClientID, RedirectURI: bound.RedirectURI}, nil
		}
	}
	return BoundClient{}, ErrUnspecified
}

// Negotiate ignores the requested scope and grants the client's
// configured default. Scope narrowing is out of scope here.
func (r *ClientRegistry) Negotiate(bound BoundClient, _ string) (PreGrant, error) {
	r.mu.Lock()
	client, ok := r.clients[bound.ClientID]
	r.mu.Unlock()
	if !ok {
		return PreGrant{}, ErrUnspecified
	}

	return PreGrant{
		ClientID:    bound.ClientID,
		RedirectURI: bound.RedirectURI,
		Scope:       client.scope,
	}, nil
}

// Check verifies client credentials. Public clients authenticate with
// no passphrase; confidential clients must match their registered
// secret under the configured hash strategy.
func (r *ClientRegistry) Check(clientID string, passphrase string) error {
	r.mu.Lock()
	client, ok := r.clients[clientID]
	r.mu.Unlock()
	if !ok {
		return ErrUnspecified
	}

	if client.public {
		if passphrase != "" {
			return ErrUnspecified
		}
		return nil
	}
	if err := client.secret.Verify(passphrase); err != nil {
		return ErrUnspecified
	}
	return nil
}
