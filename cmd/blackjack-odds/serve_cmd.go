package main

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjackodds/cmd/blackjack-odds/shared"
	"github.com/lox/blackjackodds/internal/server"
)

// ServeCmd runs the WebSocket odds server.
type ServeCmd struct {
	Config string `short:"c" default:"odds.hcl" help:"HCL config file (defaults apply when missing)"`
	Addr   string `help:"Override the configured listen address"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if !c.Debug && cfg.Server.LogLevel == "debug" {
		logger.SetLevel(log.DebugLevel)
	}

	logger.Info("loaded config",
		"addr", cfg.Server.Address,
		"idle_timeout_seconds", *cfg.Server.IdleTimeoutSeconds,
		"target", cfg.Rules.Target,
		"dealer_stand", cfg.Rules.DealerStand)

	s := server.NewServer(cfg, logger, quartz.NewReal())
	return s.Start()
}
