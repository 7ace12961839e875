package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/pulse-inc/pulse/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	OAuth     sharedConfig.OAuthConfig     `mapstructure:"oauth"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Security  sharedConfig.SecurityConfig  `mapstructure:"security"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Dashboard sharedConfig.DashboardConfig `mapstructure:"dashboard"`
	Metrics   sharedConfig.MetricsConfig   `mapstructure:"metrics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// legacyEnv maps the plain environment names used by earlier deployments.
var legacyEnv = map[string]string{
	"server.port":               "PORT",
	"server.frontend_url":       "FRONTEND_URL",
	"server.env":                "ENV",
	"oauth.slack.client_id":     "SLACK_CLIENT_ID",
	"oauth.slack.client_secret": "SLACK_CLIENT_SECRET",
	"oauth.slack.redirect_url":  "SLACK_REDIRECT_URI",
	"database.url":              "DATABASE_URL",
	"database.auth_token":       "DATABASE_AUTH_TOKEN",
	"redis.host":                "REDIS_HOST",
}

// Load loads configuration from file and environment variables.
// configPath may be empty to use the default search paths.
func Load(env string, configPath ...string) (*Config, error) {
	v := viper.New()

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnv {
		// PULSE_ prefixed names still win through AutomaticEnv
		if err := v.BindEnv(key, "PULSE_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), name); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", name, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.env", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// DefaultStateSecret is the placeholder state signing key. It is rejected in production.
const DefaultStateSecret = "change-me-in-production"

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var missing []string
	if c.OAuth.Slack.ClientID == "" {
		missing = append(missing, "SLACK_CLIENT_ID")
	}
	if c.OAuth.Slack.ClientSecret == "" {
		missing = append(missing, "SLACK_CLIENT_SECRET")
	}
	if c.Server.FrontendURL == "" {
		missing = append(missing, "FRONTEND_URL")
	}
	if c.Database.URL == "" && c.Database.Driver != "memory" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Database.Driver == "libsql" && c.Database.AuthToken == "" && strings.HasPrefix(c.Database.URL, "libsql://") {
		missing = append(missing, "DATABASE_AUTH_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.OAuth.Slack.IdentityScope {
	case "user", "team_user":
	default:
		return fmt.Errorf("invalid oauth.slack.identity_scope %q (want user or team_user)", c.OAuth.Slack.IdentityScope)
	}
	if c.OAuth.Slack.GrantTTLDays <= 0 {
		return fmt.Errorf("oauth.slack.grant_ttl_days must be positive")
	}
	if c.OAuth.State.Backend == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("oauth.state.backend is redis but redis is disabled")
	}
	if c.Server.IsProduction() && c.OAuth.State.Backend != "redis" &&
		(c.OAuth.State.Secret == "" || c.OAuth.State.Secret == DefaultStateSecret) {
		return fmt.Errorf("oauth.state.secret must be set to a private value in production")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.timezone", "UTC")

	// Database defaults
	v.SetDefault("database.driver", "libsql")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.auto_migrate", true)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// OAuth defaults (client credentials must be configured)
	v.SetDefault("oauth.slack.scopes", []string{})
	v.SetDefault("oauth.slack.user_scopes", []string{
		"channels:history",
		"channels:read",
		"groups:history",
		"groups:read",
		"im:history",
		"im:read",
		"mpim:history",
		"mpim:read",
		"users:read",
	})
	v.SetDefault("oauth.slack.identity_scope", "team_user")
	v.SetDefault("oauth.slack.grant_ttl_days", 90)
	v.SetDefault("oauth.slack.http_timeout_seconds", 15)
	v.SetDefault("oauth.state.backend", "jwt")
	v.SetDefault("oauth.state.secret", DefaultStateSecret)
	v.SetDefault("oauth.state.ttl_minutes", 10)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 30)
	v.SetDefault("ratelimit.window_seconds", 60)

	v.SetDefault("dashboard.default_days", 7)

	v.SetDefault("metrics.enabled", true)
}
