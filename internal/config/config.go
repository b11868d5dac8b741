package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all server configuration loaded from a .env file, environment
// variables and CLI flags.
type Config struct {
	OAuth struct {
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}
	Server struct {
		Transport string
		Port      int
		Host      string
		BaseURI   string
	}
	ToolTier       string
	TierConfig     string
	ReadOnly       bool
	LogLevel       string
	CredentialsDir string
	DefaultEmail   string

	// RequestsPerMinute caps outgoing Google API calls per user. Zero disables the limit.
	RequestsPerMinute int
}

// Load reads configuration using the process flag set and arguments.
func Load() (*Config, error) {
	return LoadFrom(flag.CommandLine, os.Args[1:])
}

// LoadFrom reads configuration, registering its flags on the given set.
// Precedence, lowest first: .env file, environment, flags. The .env file
// never overrides a variable already present in the environment.
func LoadFrom(flags *flag.FlagSet, args []string) (*Config, error) {
	envFile := envOrDefault("WORKSPACE_MCP_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := &Config{}
	cfg.OAuth.ClientID = os.Getenv("GOOGLE_OAUTH_CLIENT_ID")
	cfg.OAuth.ClientSecret = os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")
	cfg.DefaultEmail = os.Getenv("USER_GOOGLE_EMAIL")

	cfg.CredentialsDir = os.Getenv("WORKSPACE_MCP_CREDENTIALS_DIR")
	if cfg.CredentialsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfg.CredentialsDir = filepath.Join(home, ".google_sheets_mcp", "credentials")
	}

	cfg.Server.Host = envOrDefault("WORKSPACE_MCP_HOST", "0.0.0.0")
	cfg.Server.BaseURI = envOrDefault("WORKSPACE_MCP_BASE_URI", "http://localhost")
	cfg.Server.Transport = envOrDefault("MCP_TRANSPORT", "stdio")
	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.ToolTier = envOrDefault("TOOL_TIER", "complete")
	cfg.TierConfig = os.Getenv("SHEETS_TIER_CONFIG")
	cfg.ReadOnly = envBool("WORKSPACE_MCP_READ_ONLY")

	portStr := os.Getenv("MCP_PORT")
	if portStr == "" {
		portStr = os.Getenv("PORT")
	}
	if portStr == "" {
		portStr = "8000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	cfg.Server.Port = port

	if rpm := os.Getenv("SHEETS_REQUESTS_PER_MINUTE"); rpm != "" {
		n, err := strconv.Atoi(rpm)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid SHEETS_REQUESTS_PER_MINUTE %q: must be a non-negative integer", rpm)
		}
		cfg.RequestsPerMinute = n
	}

	flags.StringVar(&cfg.Server.Transport, "transport", cfg.Server.Transport, "Transport mode: stdio or streamable-http")
	flags.StringVar(&cfg.ToolTier, "tool-tier", cfg.ToolTier, "Load tools by tier: core, extended, or complete")
	flags.StringVar(&cfg.TierConfig, "tier-config", cfg.TierConfig, "Path to tool_tiers.yaml")
	flags.BoolVar(&cfg.ReadOnly, "read-only", cfg.ReadOnly, "Request only read-only scopes, disable write tools")
	flags.IntVar(&cfg.RequestsPerMinute, "requests-per-minute", cfg.RequestsPerMinute, "Per-user Google API request limit (0 = unlimited)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if TierLevel(cfg.ToolTier) == 0 {
		return nil, fmt.Errorf("invalid tool tier %q: use core, extended, or complete", cfg.ToolTier)
	}
	if cfg.OAuth.ClientID == "" {
		return nil, errors.New("GOOGLE_OAUTH_CLIENT_ID environment variable is required")
	}
	if cfg.OAuth.ClientSecret == "" {
		return nil, errors.New("GOOGLE_OAUTH_CLIENT_SECRET environment variable is required")
	}

	// A base URI that already carries a port is used as-is.
	parsedURI, parseErr := url.Parse(cfg.Server.BaseURI)
	if parseErr == nil && parsedURI.Port() != "" {
		cfg.OAuth.RedirectURL = cfg.Server.BaseURI + "/oauth/callback"
	} else {
		cfg.OAuth.RedirectURL = fmt.Sprintf("%s:%d/oauth/callback", cfg.Server.BaseURI, cfg.Server.Port)
	}

	return cfg, nil
}

// TierConfigPath returns the configured tier file, falling back to the
// container path and then the repository-relative one.
func (c *Config) TierConfigPath() string {
	if c.TierConfig != "" {
		return c.TierConfig
	}
	const containerPath = "/configs/tool_tiers.yaml"
	if _, err := os.Stat(containerPath); err == nil {
		return containerPath
	}
	return filepath.Join("configs", "tool_tiers.yaml")
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
