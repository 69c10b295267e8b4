package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/middleware"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/oauth"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/persist"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

type Handler struct {
	users    *persist.UserStore
	sessions *session.Manager
	endpoint *oauth.Endpoint
	signer   *oauth.TokenSigner
	policy   credentials.Policy
	hashAlg  credentials.Algorithm
}

func New(
	users *persist.UserStore,
	sessions *session.Manager,
	endpoint *oauth.Endpoint,
	signer *oauth.TokenSigner,
	policy credentials.Policy,
	hashAlg credentials.Algorithm,
) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
		endpoint: endpoint,
		signer:   signer,
		policy:   policy,
		hashAlg:  hashAlg,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	r.GET("/oauth/authorize", h.Authorize)
	r.POST("/oauth/token", h.Token)

	r.GET("/meta/issuer", h.Issuer)
	r.GET("/meta/jwk", h.Jwk)

	r.GET("/users/super-admin", h.GetSuperAdmin)
	r.POST("/users/super-admin", h.PostSuperAdmin)
	r.GET("/users/:uid", middleware.RequireSession(h.sessions), h.GetUser)
}
