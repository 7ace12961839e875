package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Env            string   `mapstructure:"env"`
	BaseURL        string   `mapstructure:"base_url"`
	FrontendURL    string   `mapstructure:"frontend_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetAllowedOrigins returns the configured origins plus the frontend URL.
func (s *ServerConfig) GetAllowedOrigins() []string {
	origins := make([]string, 0, len(s.AllowedOrigins)+1)
	seen := make(map[string]bool)
	for _, o := range append([]string{s.FrontendURL}, s.AllowedOrigins...) {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// IsProduction reports whether debug-only surfaces must stay disabled.
// It accepts the same names that select gin's release mode.
func (s *ServerConfig) IsProduction() bool {
	switch s.Env {
	case "production", "prod", "release":
		return true
	}
	return false
}

type DatabaseConfig struct {
	// Driver selects the dialector: sqlite, sqlite-pure, libsql or mysql.
	Driver          string `mapstructure:"driver"`
	URL             string `mapstructure:"url"`
	AuthToken       string `mapstructure:"auth_token"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// GetDSN returns the driver-specific data source name.
// For libsql the auth token travels as the authToken query parameter.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "libsql" && d.AuthToken != "" {
		sep := "?"
		if strings.Contains(d.URL, "?") {
			sep = "&"
		}
		return d.URL + sep + "authToken=" + d.AuthToken
	}
	return d.URL
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type SlackOAuthConfig struct {
	ClientID           string   `mapstructure:"client_id"`
	ClientSecret       string   `mapstructure:"client_secret"`
	RedirectURL        string   `mapstructure:"redirect_url"`
	Scopes             []string `mapstructure:"scopes"`
	UserScopes         []string `mapstructure:"user_scopes"`
	IdentityScope      string   `mapstructure:"identity_scope"`
	GrantTTLDays       int      `mapstructure:"grant_ttl_days"`
	HTTPTimeoutSeconds int      `mapstructure:"http_timeout_seconds"`
}

func (s *SlackOAuthConfig) GrantTTL() time.Duration {
	return time.Duration(s.GrantTTLDays) * 24 * time.Hour
}

func (s *SlackOAuthConfig) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

type StateConfig struct {
	// Backend is redis or jwt.
	Backend    string `mapstructure:"backend"`
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

func (s *StateConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type OAuthConfig struct {
	Slack SlackOAuthConfig `mapstructure:"slack"`
	State StateConfig      `mapstructure:"state"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type SecurityConfig struct {
	// TokenEncryptionKey is a base64 encoded 32 byte key; empty stores tokens as-is.
	TokenEncryptionKey string `mapstructure:"token_encryption_key"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type DashboardConfig struct {
	DefaultDays int    `mapstructure:"default_days"`
	SeedFile    string `mapstructure:"seed_file"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
