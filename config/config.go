package config

import (
	"os"
	"strings"
)

// AppConfig composes the application configuration, loaded from environment
// variables via github.com/caarlos0/env. Each concern keeps its own file:
//   - auth.go: login mode and provider settings
//   - database.go: Postgres and Redis session store
//   - http.go: HTTP server and cookies
type AppConfig struct {
	// IsDev relaxes cookie security and enables development conveniences.
	// Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig
}

// Sanitize applies guardrails to values loaded from env. Call it once after
// parsing.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.detectDevMode()
}

// detectDevMode also honors NODE_ENV, which frontend tooling commonly sets.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
