// Package config loads and defaults the Fathom configuration.
package config

import "time"

// Config is the root configuration for Fathom.
type Config struct {
	Models    ModelsConfig    `json:"models"`
	Research  ResearchConfig  `json:"research"`
	WebSearch WebSearchConfig `json:"web_search"`
	WebFetch  WebFetchConfig  `json:"web_fetch"`
}

// ModelsConfig holds model provider configuration.
type ModelsConfig struct {
	Default   string                    `json:"default"`
	Providers map[string]ProviderConfig `json:"providers"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Driver      string   `json:"driver"` // "openai", "claude", "ollama"
	Model       string   `json:"model"`
	BaseURL     string   `json:"base_url,omitempty"`
	APIKey      string   `json:"api_key,omitempty"` // direct key or ${ENV_VAR} reference
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	Timeout     Duration `json:"timeout,omitempty"`
}

// ResearchConfig holds research session settings.
type ResearchConfig struct {
	PlanFile      string   `json:"plan_file"`     // path of the live plan document
	PollInterval  Duration `json:"poll_interval"` // plan monitor poll interval
	MaxIterations int      `json:"max_iterations"`
}

// WebSearchConfig configures the web_search tool.
type WebSearchConfig struct {
	Provider     string `json:"provider"` // "duckduckgo" (default), "google", "bing"
	MaxResults   int    `json:"max_results,omitempty"`
	Timeout      string `json:"timeout,omitempty"`
	GoogleAPIKey string `json:"google_api_key,omitempty"`
	GoogleCX     string `json:"google_cx,omitempty"`
	BingAPIKey   string `json:"bing_api_key,omitempty"`
}

// WebFetchConfig configures the get_webpage_content tool.
type WebFetchConfig struct {
	Timeout   string `json:"timeout,omitempty"`
	MaxBodyKB int    `json:"max_body_kb,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
