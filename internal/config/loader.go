package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/tailscale/hujson"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates, strips
// comments, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variable templates before stripping comments,
	// since templates live inside strings.
	expanded := expandEnvTemplates(string(data))

	standardized, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("standardize config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads the config file if it exists, otherwise returns the
// env-driven default configuration so a bare OPENAI_API_KEY is enough to run.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}
	return Load(path)
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Models.Providers == nil {
		cfg.Models.Providers = map[string]ProviderConfig{}
	}
	if len(cfg.Models.Providers) == 0 {
		cfg.Models.Providers["openai"] = ProviderConfig{
			Driver:  "openai",
			Model:   "gpt-4o-mini",
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			APIKey:  "${OPENAI_API_KEY}",
		}
	}
	if cfg.Models.Default == "" {
		for name := range cfg.Models.Providers {
			if cfg.Models.Default == "" || name < cfg.Models.Default {
				cfg.Models.Default = name
			}
		}
	}

	if cfg.Research.PlanFile == "" {
		cfg.Research.PlanFile = ".research_plan.json"
	}
	if cfg.Research.PollInterval.Duration() == 0 {
		cfg.Research.PollInterval = Duration(2 * time.Second)
	}
	if cfg.Research.MaxIterations == 0 {
		cfg.Research.MaxIterations = 50
	}

	if cfg.WebSearch.Provider == "" {
		cfg.WebSearch.Provider = "duckduckgo"
	}
	if cfg.WebSearch.MaxResults <= 0 {
		cfg.WebSearch.MaxResults = 10
	}

	if cfg.WebFetch.MaxBodyKB <= 0 {
		cfg.WebFetch.MaxBodyKB = 512
	}
}
