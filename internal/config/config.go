package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort   string `env:"APP_PORT" envDefault:"27000"`
	DataDir   string `env:"DATA_DIR" envDefault:"/var/local/lib/fence"`
	StaticDir string `env:"STATIC_DIR" envDefault:"./static"`

	IssuerURL string `env:"ISSUER_URL" envDefault:"http://fence.flecs.local"`
	AdminRole string `env:"ADMIN_ROLE" envDefault:"tech.flecs.core.admin"`

	// The single client registered at startup. An empty redirect URI
	// registers the client with a wildcard redirect policy; an empty
	// secret registers it as a public client.
	ClientID          string `env:"CLIENT_ID" envDefault:"flecs"`
	ClientRedirectURI string `env:"CLIENT_REDIRECT_URI"`
	ClientScope       string `env:"CLIENT_SCOPE" envDefault:"admin"`
	ClientSecret      string `env:"CLIENT_SECRET"`

	PasswordHashAlg string        `env:"PASSWORD_HASH_ALG" envDefault:"argon2id"`
	UserSessionTTL  time.Duration `env:"USER_SESSION_TTL" envDefault:"24h"`

	// Optional: when set, user sessions are kept in Redis instead of
	// process memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
