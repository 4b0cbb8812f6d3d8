package tools

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/tool"

	"github.com/cloudwego/eino-ext/components/tool/bingsearch"
	duckduckgo "github.com/cloudwego/eino-ext/components/tool/duckduckgo/v2"
	"github.com/cloudwego/eino-ext/components/tool/googlesearch"

	"github.com/dohr-michael/fathom/internal/config"
)

const webSearchDesc = "Search the web for current information. Returns titles, URLs, and snippets."

// newDuckDuckGoTool creates a DuckDuckGo text search tool via eino-ext.
func newDuckDuckGoTool(ctx context.Context, cfg config.WebSearchConfig) (tool.InvokableTool, error) {
	duckCfg := &duckduckgo.Config{
		ToolName:   "web_search",
		ToolDesc:   webSearchDesc,
		MaxResults: cfg.MaxResults,
	}
	if duckCfg.MaxResults <= 0 {
		duckCfg.MaxResults = 10
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			duckCfg.Timeout = d
		}
	}
	return duckduckgo.NewTextSearchTool(ctx, duckCfg)
}

// newGoogleTool creates a Google Custom Search tool via eino-ext.
func newGoogleTool(ctx context.Context, cfg config.WebSearchConfig) (tool.InvokableTool, error) {
	num := cfg.MaxResults
	if num <= 0 {
		num = 10
	}
	return googlesearch.NewTool(ctx, &googlesearch.Config{
		APIKey:         cfg.GoogleAPIKey,
		SearchEngineID: cfg.GoogleCX,
		Num:            num,
		ToolName:       "web_search",
		ToolDesc:       webSearchDesc,
	})
}

// newBingTool creates a Bing search tool via eino-ext.
func newBingTool(ctx context.Context, cfg config.WebSearchConfig) (tool.InvokableTool, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	bingCfg := &bingsearch.Config{
		APIKey:     cfg.BingAPIKey,
		MaxResults: maxResults,
		ToolName:   "web_search",
		ToolDesc:   webSearchDesc,
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			bingCfg.Timeout = d
		}
	}
	return bingsearch.NewTool(ctx, bingCfg)
}
