package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

// Logout revokes the user session named by the cookie, if any, and
// clears the cookie. It is idempotent.
func (h *Handler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(session.CookieName); err == nil && sid != "" {
		_ = h.sessions.DeleteUserSession(c.Request.Context(), sid)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{})
	c.Status(http.StatusNoContent)
}
