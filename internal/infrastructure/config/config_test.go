package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", writeConfig(t, "server:\n  frontend_url: http://localhost:5173\n"))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "libsql", cfg.Database.Driver)
	assert.Equal(t, "jwt", cfg.OAuth.State.Backend)
	assert.Equal(t, "team_user", cfg.OAuth.Slack.IdentityScope)
	assert.Equal(t, 90, cfg.OAuth.Slack.GrantTTLDays)
	assert.Contains(t, cfg.OAuth.Slack.UserScopes, "channels:history")
	assert.Equal(t, 7, cfg.Dashboard.DefaultDays)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("SLACK_CLIENT_ID", "legacy-id")
	t.Setenv("SLACK_CLIENT_SECRET", "legacy-secret")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("PORT", "4000")

	cfg, err := Load("", writeConfig(t, "server:\n  frontend_url: http://localhost:5173\n"))
	require.NoError(t, err)

	assert.Equal(t, "legacy-id", cfg.OAuth.Slack.ClientID)
	assert.Equal(t, "legacy-secret", cfg.OAuth.Slack.ClientSecret)
	assert.Equal(t, "file:test.db", cfg.Database.URL)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	t.Setenv("SLACK_CLIENT_ID", "legacy-id")
	t.Setenv("PULSE_OAUTH_SLACK_CLIENT_ID", "prefixed-id")

	cfg, err := Load("", writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "prefixed-id", cfg.OAuth.Slack.ClientID)
}

func TestLoad_EnvArgumentOverridesFile(t *testing.T) {
	cfg, err := Load("production", writeConfig(t, "server:\n  env: development\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Server.IsProduction())
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.OAuth.Slack.ClientID = "id"
	cfg.OAuth.Slack.ClientSecret = "secret"
	cfg.OAuth.Slack.IdentityScope = "team_user"
	cfg.OAuth.Slack.GrantTTLDays = 90
	cfg.Server.FrontendURL = "http://localhost:5173"
	cfg.Database.Driver = "libsql"
	cfg.Database.URL = "file:pulse.db"
	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.OAuth.Slack.ClientID = ""
	cfg.OAuth.Slack.ClientSecret = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLACK_CLIENT_ID")
	assert.Contains(t, err.Error(), "SLACK_CLIENT_SECRET")

	cfg = validConfig()
	cfg.Database.URL = "libsql://pulse.turso.io"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_AUTH_TOKEN")

	cfg = validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.URL = ""
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.OAuth.Slack.IdentityScope = "team"
	assert.ErrorContains(t, cfg.Validate(), "identity_scope")

	cfg = validConfig()
	cfg.OAuth.State.Backend = "redis"
	assert.ErrorContains(t, cfg.Validate(), "redis is disabled")
}

func TestValidate_ProductionStateSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Env = "production"
	cfg.OAuth.State.Backend = "jwt"
	cfg.OAuth.State.Secret = DefaultStateSecret
	assert.ErrorContains(t, cfg.Validate(), "oauth.state.secret")

	cfg.OAuth.State.Secret = ""
	assert.ErrorContains(t, cfg.Validate(), "oauth.state.secret")

	cfg.OAuth.State.Secret = "a-private-signing-key"
	assert.NoError(t, cfg.Validate())

	// Redis-backed states are never signed.
	cfg.OAuth.State.Secret = DefaultStateSecret
	cfg.OAuth.State.Backend = "redis"
	cfg.Redis.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Env = "development"
	cfg.OAuth.State.Secret = DefaultStateSecret
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ReleaseIsProduction(t *testing.T) {
	cfg, err := Load("release", writeConfig(t, "server:\n  env: development\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Server.IsProduction())
}
