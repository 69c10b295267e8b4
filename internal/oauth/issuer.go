package oauth

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
)

const (
	rsaKeyBits = 2048
	tokenTTL   = time.Hour
)

// TokenSigner implements Issuer with an RSA key pair generated per
// process start. Tokens issued before a restart become unverifiable;
// they live one hour and the verification key is re-published, which is
// a deliberate tradeoff.
type TokenSigner struct {
	url  string
	kid  string
	key  *rsa.PrivateKey
	jwk  jose.JSONWebKey
	role string
}

func NewTokenSigner(issuerURL, adminRole string) (*TokenSigner, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	kid := uuid.NewString()
	return &TokenSigner{
		url: issuerURL,
		kid: kid,
		key: key,
		jwk: jose.JSONWebKey{
			Key:       key.Public(),
			KeyID:     kid,
			Algorithm: "RS256",
			Use:       "sig",
		},
		role: adminRole,
	}, nil
}

type roleClaim struct {
	Roles []string `json:"roles"`
}

type accessClaims struct {
	jwt.RegisteredClaims
	RealmAccess    roleClaim            `json:"realm_access"`
	ResourceAccess map[string]roleClaim `json:"resource_access"`
}

// Issue signs a bearer token for the grant owner. Expiry is a fixed
// hour from now, not derived from the grant's own expiry.
func (s *TokenSigner) Issue(g Grant) (IssuedToken, error) {
	until := time.Now().Add(tokenTTL)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   g.OwnerID,
			ExpiresAt: jwt.NewNumericDate(until),
			Issuer:    s.url,
		},
		RealmAccess: roleClaim{Roles: []string{s.role}},
		ResourceAccess: map[string]roleClaim{
			"account": {Roles: []string{s.role}},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.kid

	signed, err := token.SignedString(s.key)
	if err != nil {
		logger.Error("token signing failed", map[string]any{
			"error": err.Error(),
		})
		return IssuedToken{}, err
	}

	return IssuedToken{
		Token: signed,
		Until: until,
		Type:  TypeBearer,
	}, nil
}

func (s *TokenSigner) Refresh(_ string, _ Grant) (IssuedToken, error) {
	logger.Error("refresh not supported", nil)
	return IssuedToken{}, ErrUnsupported
}

func (s *TokenSigner) RecoverToken(_ string) (Grant, error) {
	logger.Error("token recovery not supported", nil)
	return Grant{}, ErrUnsupported
}

func (s *TokenSigner) RecoverRefresh(_ string) (Grant, error) {
	logger.Error("refresh recovery not supported", nil)
	return Grant{}, ErrUnsupported
}

// VerificationKey is the public half of the signing key, JWK shaped,
// for relying parties to validate signatures against.
func (s *TokenSigner) VerificationKey() jose.JSONWebKey {
	return s.jwk
}

// URL is the issuer URI carried in every token's iss claim.
func (s *TokenSigner) URL() string {
	return s.url
}
