package config

import (
	"fmt"

	"megapicks-go/logging"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Feed     FeedConfig
	App      AppConfig
	Rules    RulesConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"27017"`
	Username string `envconfig:"DB_USERNAME" default:""`
	Password string `envconfig:"DB_PASSWORD" default:""`
	Database string `envconfig:"DB_NAME" default:"megapicks"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Prefix string `envconfig:"LOG_PREFIX" default:"megapicks"`
}

// FeedConfig holds score/odds feed polling configuration
type FeedConfig struct {
	Enabled      bool   `envconfig:"FEED_ENABLED" default:"true"`
	PollSeconds  int    `envconfig:"FEED_POLL_SECONDS" default:"120"`
	ScoreboardURL string `envconfig:"FEED_SCOREBOARD_URL" default:"https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"`
}

// AppConfig holds contest-level configuration
type AppConfig struct {
	CurrentSeason int `envconfig:"CURRENT_SEASON" default:"2025"`
	WeeksPerSeason int `envconfig:"WEEKS_PER_SEASON" default:"18"`
}

// Load loads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is normal outside development
		logging.Debugf("No .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return &cfg, nil
}

// Validate checks required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Database.Host == "" || c.Database.Port == "" {
		return errors.New("database host and port are required")
	}
	if c.Database.Database == "" {
		return errors.New("database name is required")
	}
	if c.App.CurrentSeason < 2020 || c.App.CurrentSeason > 2035 {
		return errors.Newf("current season must be between 2020 and 2035, got %d", c.App.CurrentSeason)
	}
	if c.App.WeeksPerSeason < 1 {
		return errors.Newf("weeks per season must be positive, got %d", c.App.WeeksPerSeason)
	}
	if c.Feed.PollSeconds < 10 {
		return errors.Newf("feed poll interval must be at least 10s, got %ds", c.Feed.PollSeconds)
	}
	return nil
}

// GetServerAddress returns the full listen address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetMongoURI returns the MongoDB connection URI
func (c *Config) GetMongoURI() string {
	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.Database.Username, c.Database.Password,
			c.Database.Host, c.Database.Port,
			c.Database.Database, c.Database.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host, c.Database.Port, c.Database.Database)
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment != "production"
}

// LogConfiguration logs the current configuration without secrets
func (c *Config) LogConfiguration() {
	logging.Infof("Server: %s (environment: %s)", c.GetServerAddress(), c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database, c.Database.Password != "")
	logging.Infof("Feed: enabled=%t poll=%ds", c.Feed.Enabled, c.Feed.PollSeconds)
	logging.Infof("App: season=%d weeks=%d", c.App.CurrentSeason, c.App.WeeksPerSeason)
}
