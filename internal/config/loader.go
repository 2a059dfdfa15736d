package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for all tunerelay environment variables, e.g.
// TUNERELAY_SLACK_SIGNING_SECRET.
const EnvPrefix = "TUNERELAY"

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix+"_SERVER", &cfg.Server); err != nil {
		return Config{}, fmt.Errorf("server config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix+"_SLACK", &cfg.Slack); err != nil {
		return Config{}, fmt.Errorf("slack config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix+"_RESOLVERS", &cfg.Resolvers); err != nil {
		return Config{}, fmt.Errorf("resolvers config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if strings.TrimSpace(c.Slack.SigningSecret) == "" {
		missing = append(missing, EnvPrefix+"_SLACK_SIGNING_SECRET")
	}
	if strings.TrimSpace(c.Slack.BotToken) == "" {
		missing = append(missing, EnvPrefix+"_SLACK_BOT_TOKEN")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment: " + strings.Join(missing, ", "))
	}
	return nil
}
