package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/oauth"
)

// Token redeems an authorization code for a bearer token. Client
// credentials are accepted both as form fields and via basic auth.
func (h *Handler) Token(c *gin.Context) {
	req := oauth.TokenRequest{
		GrantType:    c.PostForm("grant_type"),
		Code:         c.PostForm("code"),
		RedirectURI:  c.PostForm("redirect_uri"),
		ClientID:     c.PostForm("client_id"),
		ClientSecret: c.PostForm("client_secret"),
	}
	if id, secret, ok := c.Request.BasicAuth(); ok {
		req.ClientID, req.ClientSecret = id, secret
	}

	token, err := h.endpoint.Token(req)
	if err != nil {
		var flowErr *oauth.FlowError
		if errors.As(err, &flowErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             flowErr.Code,
				"error_description": flowErr.Description,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token.Token,
		"token_type":   string(token.Type),
		"expires_in":   int(time.Until(token.Until).Seconds()),
	})
}
