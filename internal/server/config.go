package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjackodds/internal/engine"
)

// Config represents the complete server configuration.
type Config struct {
	Server *Settings    `hcl:"server,block"`
	Rules  *RulesConfig `hcl:"rules,block"`
}

// Settings contains server-level configuration. IdleTimeoutSeconds is a
// pointer so an explicit 0 (disable idle disconnects) survives decoding;
// only an absent attribute falls back to the default.
type Settings struct {
	Address            string `hcl:"address,optional"`
	IdleTimeoutSeconds *int   `hcl:"idle_timeout_seconds,optional"`
	LogLevel           string `hcl:"log_level,optional"`
}

// RulesConfig overrides the engine's table rules.
type RulesConfig struct {
	Target         int `hcl:"target,optional"`
	DealerStand    int `hcl:"dealer_stand,optional"`
	MaxCard        int `hcl:"max_card,optional"`
	MinPlayerTotal int `hcl:"min_player_total,optional"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	rules := engine.DefaultRules()
	return &Config{
		Server: &Settings{
			Address:            ":8080",
			IdleTimeoutSeconds: intPtr(300),
			LogLevel:           "info",
		},
		Rules: &RulesConfig{
			Target:         rules.Target,
			DealerStand:    rules.DealerStand,
			MaxCard:        rules.MaxCard,
			MinPlayerTotal: rules.MinPlayerTotal,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults; a partial file is backfilled with them.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Rules == nil {
		config.Rules = defaults.Rules
	}
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.IdleTimeoutSeconds == nil {
		config.Server.IdleTimeoutSeconds = defaults.Server.IdleTimeoutSeconds
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Rules.Target == 0 {
		config.Rules.Target = defaults.Rules.Target
	}
	if config.Rules.DealerStand == 0 {
		config.Rules.DealerStand = defaults.Rules.DealerStand
	}
	if config.Rules.MaxCard == 0 {
		config.Rules.MaxCard = defaults.Rules.MaxCard
	}
	if config.Rules.MinPlayerTotal == 0 {
		config.Rules.MinPlayerTotal = defaults.Rules.MinPlayerTotal
	}

	return &config, nil
}

// IdleTimeout returns the configured idle disconnect duration; zero
// means connections are never idled out.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(*c.Server.IdleTimeoutSeconds) * time.Second
}

// EngineRules converts the configured rules to engine.Rules.
func (c *Config) EngineRules() engine.Rules {
	return engine.Rules{
		Target:         c.Rules.Target,
		MaxCard:        c.Rules.MaxCard,
		DealerStand:    c.Rules.DealerStand,
		MinPlayerTotal: c.Rules.MinPlayerTotal,
	}
}

func intPtr(v int) *int {
	return &v
}
