package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/oauth"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

// Authorize is the cookie-driven entry into the authorization-code
// flow. Without a valid user session it parks the original query in a
// login session and redirects to the login form; with one it drives
// the flow, auto-approving on behalf of the session's subject.
func (h *Handler) Authorize(c *gin.Context) {
	ctx := c.Request.Context()

	var sess *session.UserSession
	if sid, err := c.Cookie(session.CookieName); err == nil && sid != "" {
		sess, err = h.sessions.GetUserSession(ctx, sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}
	}

	if sess == nil {
		login, err := h.sessions.NewLoginSession(c.Request.URL.RawQuery)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}

		session.SetCookie(c.Writer, login.Sid, session.CookieOptions{
			MaxAge: int(session.LoginTTL.Seconds()),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	req := oauth.AuthorizeRequest{
		ResponseType: c.Query("response_type"),
		ClientID:     c.Query("client_id"),
		RedirectURI:  c.Query("redirect_uri"),
		Scope:        c.Query("scope"),
		State:        c.Query("state"),
	}

	target, err := h.endpoint.Authorize(req, strconv.Itoa(int(sess.Uid)))
	if err != nil {
		logger.Warn("authorization rejected", map[string]any{
			"client_id": req.ClientID,
			"error":     err.Error(),
		})
		c.String(http.StatusBadRequest, "Invalid OAuth request")
		return
	}

	c.Redirect(http.StatusFound, target)
}
