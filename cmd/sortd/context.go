package main

import (
	"strings"

	"sortd/internal/config"
)

// commandContext carries the persistent flag values and the lazily loaded
// configuration shared by every subcommand.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	jsonLogFlag  *bool

	cfg *config.Config
}

func newCommandContext(configFlag, logLevelFlag *string, jsonLogFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		jsonLogFlag:  jsonLogFlag,
	}
}

// ensureConfig loads the configuration once and applies CLI overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, _, _, err := config.Load(c.configValue())
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
		cfg.Logging.Level = level
	}
	if *c.jsonLogFlag {
		cfg.Logging.Format = "json"
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) configValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}
