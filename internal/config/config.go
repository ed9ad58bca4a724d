// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	DBPath   string `env:"DB_PATH" envDefault:"data/portfolio.db"`

	// TrustProxy honours X-Forwarded-For / X-Real-IP. Enable it only behind
	// a reverse proxy that overwrites those headers; otherwise any client
	// could pick the address the rate limiter sees.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	CORS      CORS      `envPrefix:"CORS_"`
	Session   Session   `envPrefix:"SESSION_"`
	Admin     Admin     `envPrefix:"ADMIN_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"12"`
	HealthCacheTTL time.Duration `env:"HEALTH_CACHE_TTL" envDefault:"10s"`
}

// CORS lists the browser origins allowed to call the API with credentials.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Session contains session cookie parameters.
type Session struct {
	CookieName   string        `env:"COOKIE_NAME" envDefault:"portfolio.sid"`
	TTL          time.Duration `env:"TTL" envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Admin is the account seeded at startup when it does not exist yet.
type Admin struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin123"`
}

// RateLimit holds one policy per limited surface.
type RateLimit struct {
	API     Limit `envPrefix:"API_"`
	Login   Limit `envPrefix:"LOGIN_"`
	Contact Limit `envPrefix:"CONTACT_"`
}

// Limit allows Requests per Window for each client IP.
// Defaults are filled per policy by Load.
type Limit struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
}

// Policy defaults: general API 100/15m, login 5/15m, contact form 5/1h.
var defaultLimits = RateLimit{
	API:     Limit{Requests: 100, Window: 15 * time.Minute},
	Login:   Limit{Requests: 5, Window: 15 * time.Minute},
	Contact: Limit{Requests: 5, Window: time.Hour},
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads an optional .env file, then parses the environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: loading env file: %w", err)
	}

	cfg := Config{RateLimit: defaultLimits}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	if c.Session.TTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	for name, l := range map[string]Limit{
		"API": c.RateLimit.API, "LOGIN": c.RateLimit.Login, "CONTACT": c.RateLimit.Contact,
	} {
		if l.Requests <= 0 || l.Window <= 0 {
			return fmt.Errorf("config: RATE_LIMIT_%s needs positive REQUESTS and WINDOW", name)
		}
	}
	return nil
}
