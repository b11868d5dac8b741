package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware logs every MCP request with its duration. Tool calls
// also carry the tool name, and tool-level failures are logged as warnings
// because the SDK reports them inside a successful result.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			attrs := []any{"method", method}
			if params, ok := req.GetParams().(*mcp.CallToolParamsRaw); ok && params != nil {
				attrs = append(attrs, "tool", params.Name)
			}

			start := time.Now()
			logger.DebugContext(ctx, "handling request", attrs...)

			result, err := next(ctx, method, req)

			attrs = append(attrs, "duration", time.Since(start))
			switch {
			case err != nil:
				logger.ErrorContext(ctx, "request failed", append(attrs, "error", err)...)
			case isToolError(result):
				logger.WarnContext(ctx, "tool returned error", attrs...)
			default:
				logger.InfoContext(ctx, "request completed", attrs...)
			}
			return result, err
		}
	}
}

func isToolError(result mcp.Result) bool {
	r, ok := result.(*mcp.CallToolResult)
	return ok && r != nil && r.IsError
}
