package oauth

import (
	"fmt"
	"net/url"
)

// FlowError is an OAuth protocol failure carrying the standard error
// code for the response body.
type FlowError struct {
	Code        string
	Description string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func flowErr(code, description string) *FlowError {
	return &FlowError{Code: code, Description: description}
}

// Endpoint binds the three capability providers for the two protocol
// requests. It holds no state of its own.
type Endpoint struct {
	Registrar  Registrar
	Authorizer Authorizer
	Issuer     Issuer
}

type AuthorizeRequest struct {
	ResponseType string
	ClientID     string
	RedirectURI  string
	Scope        string
	State        string
}

// Authorize runs the authorization half of the code flow for an
// already-consented owner and returns the redirect target carrying the
// authorization code.
func (e *Endpoint) Authorize(req AuthorizeRequest, ownerID string) (string, error) {
	if req.ResponseType != "code" {
		return "", flowErr("unsupported_response_type", "only response_type=code is supported")
	}
	if req.ClientID == "" {
		return "", flowErr("invalid_request", "client_id is required")
	}

	bound, err := e.Registrar.BoundRedirect(ClientURL{
		ClientID:    req.ClientID,
		RedirectURI: req.RedirectURI,
	})
	if err != nil {
		return "", flowErr("invalid_request", "client or redirect uri not accepted")
	}

	pre, err := e.Registrar.Negotiate(bound, req.Scope)
	if err != nil {
		return "", flowErr("invalid_request", "scope negotiation failed")
	}

	code, err := e.Authorizer.Authorize(Grant{
		OwnerID:     ownerID,
		ClientID:    pre.ClientID,
		Scope:       pre.Scope,
		RedirectURI: pre.RedirectURI,
	})
	if err != nil {
		return "", err
	}

	target, err := url.Parse(pre.RedirectURI)
	if err != nil {
		return "", flowErr("invalid_request", "redirect uri is not a valid url")
	}
	q := target.Query()
	q.Set("code", code)
	if req.State != "" {
		q.Set("state", req.State)
	}
	target.RawQuery = q.Encode()

	return target.String(), nil
}

type TokenRequest struct {
	GrantType    string
	Code         string
	RedirectURI  string
	ClientID     string
	ClientSecret string
}

// Token redeems an authorization code for a bearer token. The code is
// consumed even when a later check fails; a replayed or mismatched code
// never gets a second chance.
func (e *Endpoint) Token(req TokenRequest) (IssuedToken, error) {
	if req.GrantType != "authorization_code" {
		return IssuedToken{}, flowErr("unsupported_grant_type", "only authorization_code is supported")
	}
	if req.Code == "" {
		return IssuedToken{}, flowErr("invalid_request", "code is required")
	}

	if err := e.Registrar.Check(req.ClientID, req.ClientSecret); err != nil {
		return IssuedToken{}, flowErr("invalid_client", "client authentication failed")
	}

	grant, ok := e.Authorizer.Extract(req.Code)
	if !ok {
		return IssuedToken{}, flowErr("invalid_grant", "authorization code is unknown or expired")
	}
	if grant.ClientID != req.ClientID {
		return IssuedToken{}, flowErr("invalid_grant", "authorization code was issued to another client")
	}
	if req.RedirectURI != "" && req.RedirectURI != grant.RedirectURI {
		return IssuedToken{}, flowErr("invalid_grant", "redirect_uri does not match the authorization request")
	}

	token, err := e.Issuer.Issue(grant)
	if err != nil {
		return IssuedToken{}, flowErr("invalid_request", "token issuance failed")
	}
	return token, nil
}
