package app

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/handler"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/config"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/oauth"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/persist"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	// ----------------------------
	// Persistence
	// ----------------------------

	users, err := persist.OpenUserStore(filepath.Join(cfg.DataDir, "users.json"))
	if err != nil {
		return nil, nil, err
	}
	groups, err := persist.OpenGroupStore(filepath.Join(cfg.DataDir, "groups.json"))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("record stores ready", map[string]any{
		"data_dir": cfg.DataDir,
	})

	// ----------------------------
	// Sessions
	// ----------------------------

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		client, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		store = session.NewRedisStore(client)
		logger.Info("redis session store ready", nil)
	}

	sessions := session.NewManager(store, cfg.UserSessionTTL)
	go sessions.Run(ctx)

	// ----------------------------
	// OAuth capabilities
	// ----------------------------

	hashAlg, err := credentials.ParseAlgorithm(cfg.PasswordHashAlg)
	if err != nil {
		return nil, nil, err
	}

	registry := oauth.NewClientRegistry(hashAlg)
	redirects := oauth.WildcardRedirect()
	if cfg.ClientRedirectURI != "" {
		redirects = oauth.ExactRedirect(cfg.ClientRedirectURI)
	}
	if err := registry.Register(oauth.Client{
		ID:         cfg.ClientID,
		Redirects:  redirects,
		Scope:      cfg.ClientScope,
		Passphrase: cfg.ClientSecret,
	}); err != nil {
		return nil, nil, err
	}

	signer, err := oauth.NewTokenSigner(cfg.IssuerURL, cfg.AdminRole)
	if err != nil {
		return nil, nil, err
	}

	endpoint := &oauth.Endpoint{
		Registrar:  registry,
		Authorizer: oauth.NewCodeMap(),
		Issuer:     signer,
	}

	authHandler := handler.New(
		users,
		sessions,
		endpoint,
		signer,
		credentials.DefaultPolicy(),
		hashAlg,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Everything else, notably GET /login, is served from the static
	// frontend directory.
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return errors.Join(users.Close(), groups.Close())
	}, nil
}

func newRedisClient(addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
