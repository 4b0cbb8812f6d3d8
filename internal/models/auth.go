package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/dohr-michael/fathom/internal/config"
)

// defaultKeyEnv maps drivers to their conventional API key env var.
var defaultKeyEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"claude": "ANTHROPIC_API_KEY",
}

// ResolveAPIKey resolves the credentials for a provider.
// Resolution order: direct value → ${ENV_VAR} reference → driver default env.
func ResolveAPIKey(cfg config.ProviderConfig) (string, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		key = os.Getenv(key[2 : len(key)-1])
	}
	if key != "" {
		return key, nil
	}

	if env := defaultKeyEnv[strings.ToLower(cfg.Driver)]; env != "" {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
		return "", fmt.Errorf("no api key for driver %q: set api_key in config or %s", cfg.Driver, env)
	}
	return "", fmt.Errorf("no api key for driver %q", cfg.Driver)
}
