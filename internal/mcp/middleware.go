package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	maxParamLogLen       = 200
	slowRequestThreshold = time.Second
)

// LoggingMiddleware logs every request with its duration. Calls slower than
// a second are logged at warn.
func LoggingMiddleware(logger *slog.Logger) sdk.Middleware {
	return func(next sdk.MethodHandler) sdk.MethodHandler {
		return func(ctx context.Context, method string, req sdk.Request) (sdk.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			attrs := []any{"method", method, "duration_ms", duration.Milliseconds()}
			if params := req.GetParams(); params != nil {
				attrs = append(attrs, "params", truncate(fmt.Sprintf("%+v", params), maxParamLogLen))
			}
			if tool, ok := result.(*sdk.CallToolResult); ok && tool != nil && tool.IsError {
				attrs = append(attrs, "tool_error", true)
			}

			switch {
			case err != nil:
				logger.Error("request failed", append(attrs, "error", err.Error())...)
			case duration > slowRequestThreshold:
				logger.Warn("slow request", attrs...)
			default:
				logger.Debug("request completed", attrs...)
			}
			return result, err
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
