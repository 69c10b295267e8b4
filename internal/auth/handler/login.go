package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials against the user store. On success it
// redeems any pending login session named by the sid cookie, mints a
// user session, and sends the browser back into the authorize flow
// with the recovered query. Failures never reveal whether the username
// existed.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, found := h.users.GetByName(req.Username)
	if !found || user.Password.Verify(req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	var pending *session.LoginSession
	if sid, err := c.Cookie(session.CookieName); err == nil && sid != "" {
		if ls, ok := h.sessions.TakeLoginSession(sid); ok {
			pending = &ls
		}
	}

	sess, err := h.sessions.NewUserSession(c.Request.Context(), user.Uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	session.SetCookie(c.Writer, sess.Sid, session.CookieOptions{})

	logger.Info("login successful", map[string]any{
		"uid": user.Uid,
	})

	if pending != nil {
		c.Redirect(http.StatusFound, "/oauth/authorize?"+pending.Query)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_in"})
}
