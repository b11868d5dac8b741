package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("WORKSPACE_MCP_CREDENTIALS_DIR", t.TempDir())
	t.Setenv("WORKSPACE_MCP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	return LoadFrom(flag.NewFlagSet("test", flag.ContinueOnError), args)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, TierComplete, cfg.ToolTier)
	assert.False(t, cfg.ReadOnly)
	assert.Zero(t, cfg.RequestsPerMinute)
	assert.Equal(t, "http://localhost:8000/oauth/callback", cfg.OAuth.RedirectURL)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("TOOL_TIER", "core")
	t.Setenv("SHEETS_REQUESTS_PER_MINUTE", "120")

	cfg, err := load(t, "-tool-tier", "extended", "-read-only", "-requests-per-minute", "30")
	require.NoError(t, err)
	assert.Equal(t, TierExtended, cfg.ToolTier)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, 30, cfg.RequestsPerMinute)
}

func TestLoad_BaseURIWithPort(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKSPACE_MCP_BASE_URI", "https://sheets.example.com:8443")
	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "https://sheets.example.com:8443/oauth/callback", cfg.OAuth.RedirectURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing client id", map[string]string{"GOOGLE_OAUTH_CLIENT_ID": ""}, nil},
		{"missing client secret", map[string]string{"GOOGLE_OAUTH_CLIENT_SECRET": ""}, nil},
		{"bad port", map[string]string{"MCP_PORT": "http"}, nil},
		{"negative rate", map[string]string{"SHEETS_REQUESTS_PER_MINUTE": "-1"}, nil},
		{"unknown tier", nil, []string{"-tool-tier", "everything"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	setRequired(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("USER_GOOGLE_EMAIL=dotenv@example.com\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("WORKSPACE_MCP_ENV_FILE", envFile)

	// Registered with t.Setenv so cleanup restores them, then unset so the
	// .env file can provide them.
	t.Setenv("USER_GOOGLE_EMAIL", "")
	os.Unsetenv("USER_GOOGLE_EMAIL")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "dotenv@example.com", cfg.DefaultEmail)
	assert.Equal(t, "warn", cfg.LogLevel, ".env must not override the environment")
}

func TestTierConfigPath(t *testing.T) {
	cfg := &Config{TierConfig: "/etc/tiers.yaml"}
	assert.Equal(t, "/etc/tiers.yaml", cfg.TierConfigPath())
}
