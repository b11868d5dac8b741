package registry

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
	"github.com/evert/google-sheets-mcp-go/internal/config"
	authtools "github.com/evert/google-sheets-mcp-go/internal/tools/auth"
	"github.com/evert/google-sheets-mcp-go/internal/tools/sheets"
)

// toolNameRE enforces SEP-986: tool names must match ^[a-zA-Z0-9_-]{1,64}$
var toolNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateToolName checks that a tool name complies with SEP-986.
func ValidateToolName(name string) error {
	if !toolNameRE.MatchString(name) {
		return fmt.Errorf("tool name %q does not match SEP-986 pattern ^[a-zA-Z0-9_-]{1,64}$", name)
	}
	return nil
}

// RegisterAll registers the Sheets tools and the auth tool, applying the tier
// and read-only filters. An empty tier map registers every tool unfiltered.
// It returns the names of the registered tools.
func RegisterAll(server *mcp.Server, provider sheets.ServiceProvider, cfg *config.Config, tierMap map[string]config.ToolInfo, oauthMgr *auth.OAuthManager, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("registering tools", "tier", cfg.ToolTier, "readOnly", cfg.ReadOnly, "tierEntries", len(tierMap))

	var registered []string
	include := func(name string, annotations *mcp.ToolAnnotations) bool {
		if err := ValidateToolName(name); err != nil {
			logger.Error("skipping tool with invalid name", "tool", name, "error", err)
			return false
		}
		var ok bool
		if len(tierMap) == 0 {
			ok = !excludedByMode(cfg, name, annotations)
		} else {
			ok = ShouldIncludeTool(name, cfg, tierMap, annotations)
		}
		if ok {
			registered = append(registered, name)
		}
		return ok
	}

	sheets.Register(server, provider, logger, include)
	if include(authtools.ToolName, authtools.Tool.Annotations) {
		authtools.Register(server, oauthMgr)
	}

	logger.Info("registered tools", "count", len(registered))
	return registered
}

// ShouldIncludeTool checks whether a tool should be registered based on the current config.
func ShouldIncludeTool(toolName string, cfg *config.Config, tierMap map[string]config.ToolInfo, annotations *mcp.ToolAnnotations) bool {
	info, ok := tierMap[toolName]
	if !ok {
		slog.Warn("tool not found in tier config, skipping", "tool", toolName)
		return false
	}

	if config.TierLevel(info.Tier) > config.TierLevel(cfg.ToolTier) {
		return false
	}
	return !excludedByMode(cfg, toolName, annotations)
}

// excludedByMode drops write tools in read-only mode. The auth tool is
// kept: read-only users still have to sign in.
func excludedByMode(cfg *config.Config, toolName string, annotations *mcp.ToolAnnotations) bool {
	if !cfg.ReadOnly || toolName == authtools.ToolName {
		return false
	}
	return annotations != nil && !annotations.ReadOnlyHint
}
