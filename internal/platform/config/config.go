package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	// Either YOUTUBE_API_KEY or the legacy YT_API_KEY must be set for
	// key-based Data API access.
	YouTubeAPIKey       string `env:"YOUTUBE_API_KEY"`
	YouTubeAPIKeyLegacy string `env:"YT_API_KEY"`

	// OAuth files for the analytics (retention) surface.
	ClientSecretFile string `env:"GOOGLE_CLIENT_SECRET_FILE" envDefault:"client_secret.json"`
	OAuthTokenFile   string `env:"GOOGLE_OAUTH_TOKEN_FILE" envDefault:"token.json"`

	LicenseStoreFile string `env:"LICENSE_STORE_FILE" envDefault:"licenses.json"`
	AdminPassword    string `env:"ADMIN_PASSWORD"`

	APIPort    int `env:"API_PORT" envDefault:"8080"`
	HealthPort int `env:"HEALTH_PORT" envDefault:"8081"`

	DefaultRecentVideos int           `env:"AUDIT_DEFAULT_VIDEOS" envDefault:"10"`
	MaxRecentVideos     int           `env:"AUDIT_MAX_VIDEOS" envDefault:"40"`
	RetentionInsights   int           `env:"RETENTION_INSIGHTS" envDefault:"5"`
	YouTubeRPS          float64       `env:"YOUTUBE_RPS" envDefault:"5"`
	YouTubeTimeout      time.Duration `env:"YOUTUBE_TIMEOUT" envDefault:"60s"`
	APIRateLimitRPS     int           `env:"API_RATE_LIMIT_RPS" envDefault:"5"`
	APIRateLimitBurst   int           `env:"API_RATE_LIMIT_BURST" envDefault:"10"`
}

// APIKey resolves the Data API key, preferring the primary variable.
func (c *Config) APIKey() string {
	if c.YouTubeAPIKey != "" {
		return c.YouTubeAPIKey
	}

	return c.YouTubeAPIKeyLegacy
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
