package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
)

func newTestEndpoint(t *testing.T) *Endpoint {
	t.Helper()

	registry := NewClientRegistry(credentials.AlgorithmBcrypt)
	require.NoError(t, registry.Register(Client{
		ID:        "flecs",
		Redirects: WildcardRedirect(),
		Scope:     "admin",
	}))

	signer, err := NewTokenSigner("http://fence.flecs.local", "tech.flecs.core.admin")
	require.NoError(t, err)

	return &Endpoint{
		Registrar:  registry,
		Authorizer: NewCodeMap(),
		Issuer:     signer,
	}
}

func authorizeCode(t *testing.T, e *Endpoint) (code, redirectURI string) {
	t.Helper()

	redirectURI = "https://device.local/cb"
	target, err := e.Authorize(AuthorizeRequest{
		ResponseType: "code",
		ClientID:     "flecs",
		RedirectURI:  redirectURI,
		State:        "xyz",
	}, "0")
	require.NoError(t, err)

	parsed, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "xyz", parsed.Query().Get("state"))

	code = parsed.Query().Get("code")
	require.NotEmpty(t, code)
	return code, redirectURI
}

func TestAuthorizeThenToken(t *testing.T) {
	e := newTestEndpoint(t)
	code, redirectURI := authorizeCode(t, e)

	token, err := e.Token(TokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: redirectURI,
		ClientID:    "flecs",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, TypeBearer, token.Type)
}

func TestAuthorizeRejectsBadRequests(t *testing.T) {
	e := newTestEndpoint(t)

	_, err := e.Authorize(AuthorizeRequest{
		ResponseType: "token",
		ClientID:     "flecs",
		RedirectURI:  "https://device.local/cb",
	}, "0")
	assert.Error(t, err, "implicit flow is not supported")

	_, err = e.Authorize(AuthorizeRequest{
		ResponseType: "code",
	}, "0")
	assert.Error(t, err, "client_id is required")

	_, err = e.Authorize(AuthorizeRequest{
		ResponseType: "code",
		ClientID:     "flecs",
	}, "0")
	assert.Error(t, err, "wildcard client without redirect_uri is rejected")
}

func TestTokenRejectsReplayedCode(t *testing.T) {
	e := newTestEndpoint(t)
	code, redirectURI := authorizeCode(t, e)

	req := TokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: redirectURI,
		ClientID:    "flecs",
	}

	_, err := e.Token(req)
	require.NoError(t, err)

	_, err = e.Token(req)
	require.Error(t, err)

	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "invalid_grant", flowErr.Code)
}

func TestTokenRejectsMismatches(t *testing.T) {
	e := newTestEndpoint(t)

	code, _ := authorizeCode(t, e)
	_, err := e.Token(TokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: "https://elsewhere.local/cb",
		ClientID:    "flecs",
	})
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "invalid_grant", flowErr.Code)

	code, redirectURI := authorizeCode(t, e)
	_, err = e.Token(TokenRequest{
		GrantType:   "password",
		Code:        code,
		RedirectURI: redirectURI,
		ClientID:    "flecs",
	})
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "unsupported_grant_type", flowErr.Code)

	_, err = e.Token(TokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: redirectURI,
		ClientID:    "ghost",
	})
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "invalid_client", flowErr.Code)
}
