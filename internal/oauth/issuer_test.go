package oauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *TokenSigner {
	t.Helper()
	signer, err := NewTokenSigner("http://fence.flecs.local", "tech.flecs.core.admin")
	require.NoError(t, err)
	return signer
}

func TestIssueSignedToken(t *testing.T) {
	signer := newTestSigner(t)

	issued, err := signer.Issue(Grant{
		OwnerID:  "0",
		ClientID: "flecs",
		Scope:    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeBearer, issued.Type)
	assert.Empty(t, issued.Refresh, "no refresh token is issued")
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.Until, time.Minute)

	var claims accessClaims
	token, err := jwt.ParseWithClaims(issued.Token, &claims, func(tok *jwt.Token) (any, error) {
		require.Equal(t, "RS256", tok.Method.Alg())
		require.Equal(t, signer.VerificationKey().KeyID, tok.Header["kid"])
		return signer.VerificationKey().Key, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "0", claims.Subject)
	assert.Equal(t, "http://fence.flecs.local", claims.Issuer)
	assert.Equal(t, []string{"tech.flecs.core.admin"}, claims.RealmAccess.Roles)
	assert.Equal(t, []string{"tech.flecs.core.admin"}, claims.ResourceAccess["account"].Roles)
}

func TestVerificationKeyShape(t *testing.T) {
	signer := newTestSigner(t)

	key := signer.VerificationKey()
	assert.True(t, key.IsPublic())
	assert.Equal(t, "RS256", key.Algorithm)
	assert.Equal(t, "sig", key.Use)
	assert.NotEmpty(t, key.KeyID)
}

func TestKeyPairIsPerProcess(t *testing.T) {
	a := newTestSigner(t)
	b := newTestSigner(t)

	issued, err := a.Issue(Grant{OwnerID: "0", ClientID: "flecs"})
	require.NoError(t, err)

	_, err = jwt.Parse(issued.Token, func(*jwt.Token) (any, error) {
		return b.VerificationKey().Key, nil
	})
	assert.Error(t, err, "tokens are not verifiable across key generations")
}

func TestUnsupportedCapabilities(t *testing.T) {
	signer := newTestSigner(t)

	_, err := signer.Refresh("refresh-token", Grant{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = signer.RecoverToken("token")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = signer.RecoverRefresh("refresh-token")
	assert.ErrorIs(t, err, ErrUnsupported)
}
