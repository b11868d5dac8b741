package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
	"github.com/evert/google-sheets-mcp-go/internal/config"
	"github.com/evert/google-sheets-mcp-go/internal/middleware"
	"github.com/evert/google-sheets-mcp-go/internal/registry"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

const serverVersion = "1.0.0"

func main() {
	// Structured logging to stderr (stdout is reserved for MCP stdio transport)
	slog.SetDefault(newLogger("info"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx); err != nil {
		cancel()
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
	cancel()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	tokenStore, err := auth.NewFileTokenStore(cfg.CredentialsDir)
	if err != nil {
		return fmt.Errorf("initializing token store: %w", err)
	}

	oauthMgr := auth.NewOAuthManager(
		cfg.OAuth.ClientID,
		cfg.OAuth.ClientSecret,
		cfg.OAuth.RedirectURL,
		auth.Scopes(cfg.ReadOnly),
		tokenStore,
	)

	factory := services.NewFactory(oauthMgr, services.WithRequestsPerMinute(cfg.RequestsPerMinute))

	tierConfigPath := cfg.TierConfigPath()
	tierMap, err := config.LoadTiers(tierConfigPath)
	if err != nil {
		logger.Warn("could not load tier config, all tools will be registered unfiltered",
			"path", tierConfigPath,
			"error", err,
		)
		tierMap = make(map[string]config.ToolInfo)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "google-sheets-mcp",
		Version: serverVersion,
	}, nil)

	server.AddReceivingMiddleware(
		middleware.LoggingMiddleware(logger),
		middleware.AuthEnhancerMiddleware(oauthMgr),
	)

	tools := registry.RegisterAll(server, factory, cfg, tierMap, oauthMgr, logger)

	logger.Info("starting Google Sheets MCP server",
		"transport", cfg.Server.Transport,
		"tier", cfg.ToolTier,
		"readOnly", cfg.ReadOnly,
		"tools", len(tools),
		"requestsPerMinute", cfg.RequestsPerMinute,
	)

	switch cfg.Server.Transport {
	case "stdio":
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return fmt.Errorf("stdio server error: %w", err)
		}

	case "streamable-http":
		mcpHandler := mcp.NewStreamableHTTPHandler(
			func(r *http.Request) *mcp.Server { return server },
			nil,
		)

		// /oauth/callback is served next to the MCP endpoint
		mux := http.NewServeMux()
		mux.Handle("/mcp", mcpHandler)
		mux.HandleFunc("/oauth/callback", auth.OAuthCallbackHandler(oauthMgr, factory))

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down HTTP server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", "error", err)
			}
		}()

		logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}

	default:
		return fmt.Errorf("unknown transport %q: use 'stdio' or 'streamable-http'", cfg.Server.Transport)
	}

	return nil
}
