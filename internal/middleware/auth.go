package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

const uidKey = "auth.uid"

// RequireSession rejects requests without a valid user-session cookie
// and attaches the authenticated uid to the gin context.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := sessions.GetUserSession(c.Request.Context(), sid)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(uidKey, sess.Uid)
		c.Next()
	}
}

// UidFromContext extracts the authenticated uid set by RequireSession.
func UidFromContext(c *gin.Context) (model.Uid, bool) {
	v, ok := c.Get(uidKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(model.Uid)
	return uid, ok
}
