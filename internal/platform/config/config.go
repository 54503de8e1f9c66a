package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	// Balance service transport configuration. The resolver takes these
	// explicitly; nothing reads the environment after startup.
	BalanceAPIURL     string
	BalanceAPIKey     string
	BalanceAPITimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TOKENGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	balanceURL := os.Getenv("BALANCE_API_URL")
	if balanceURL == "" {
		balanceURL = "https://api.bitbadges.io"
	}

	return Server{
		Addr:              addr,
		JWTSigningKey:     jwtSigningKey,
		JWTIssuer:         "tokengate",
		TokenTTL:          time.Hour,
		BalanceAPIURL:     balanceURL,
		BalanceAPIKey:     os.Getenv("BALANCE_API_KEY"),
		BalanceAPITimeout: 10 * time.Second,
	}
}
