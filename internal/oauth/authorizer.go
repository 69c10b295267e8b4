package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

const (
	codeBytes = 16
	codeTTL   = 10 * time.Minute
)

// CodeMap implements Authorizer as an in-memory map of pending grants
// keyed by random authorization codes. Codes are redeemable once.
type CodeMap struct {
	mu     sync.Mutex
	grants map[string]Grant
}

func NewCodeMap() *CodeMap {
	return &CodeMap{grants: make(map[string]Grant)}
}

func (c *CodeMap) Authorize(g Grant) (string, error) {
	code, err := randomToken(codeBytes)
	if err != nil {
		return "", err
	}
	if g.ExpireAt.IsZero() {
		g.ExpireAt = time.Now().Add(codeTTL)
	}

	c.mu.Lock()
	c.grants[code] = g
	c.mu.Unlock()

	return code, nil
}

// Extract removes and returns the grant for code. A second call with
// the same code, or a call past the grant's expiry, finds nothing.
func (c *CodeMap) Extract(code string) (Grant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.grants[code]
	if !ok {
		return Grant{}, false
	}
	delete(c.grants, code)

	if time.Now().After(g.ExpireAt) {
		return Grant{}, false
	}
	return g, true
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
