package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/fathom/internal/config"
)

// WebSearchTool wraps an eino-ext search tool behind a single web_search
// name, whichever provider is configured.
type WebSearchTool struct {
	inner tool.InvokableTool
}

// NewWebSearchTool creates a web search tool using the configured provider.
// Supported: "duckduckgo" (default, no API key), "google", "bing".
func NewWebSearchTool(ctx context.Context, cfg config.WebSearchConfig) (*WebSearchTool, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "duckduckgo"
	}

	var inner tool.InvokableTool
	var err error

	switch provider {
	case "duckduckgo":
		slog.Info("web_search: using DuckDuckGo provider")
		inner, err = newDuckDuckGoTool(ctx, cfg)
	case "google":
		inner, err = newGoogleTool(ctx, cfg)
	case "bing":
		inner, err = newBingTool(ctx, cfg)
	default:
		return nil, fmt.Errorf("web_search: unknown provider %q", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("web_search: init %s: %w", provider, err)
	}

	return &WebSearchTool{inner: inner}, nil
}

// Info returns the tool info for Eino registration.
func (t *WebSearchTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.inner.Info(ctx)
}

// InvokableRun delegates to the provider-specific tool.
func (t *WebSearchTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	return t.inner.InvokableRun(ctx, argumentsInJSON, opts...)
}
