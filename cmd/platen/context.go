package main

import (
	"log/slog"
	"strings"
	"sync"

	"platen/internal/config"
	"platen/internal/logging"
	"platen/internal/profile"
	"platen/internal/spool"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// resolveProfile loads the capability profile named by flag overrides
// first, the configuration second.
func (c *commandContext) resolveProfile(nameFlag, fileFlag string) (*profile.Profile, error) {
	if fileFlag != "" {
		expanded, err := config.ExpandPath(fileFlag)
		if err != nil {
			return nil, err
		}
		return profile.Load(expanded)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if nameFlag != "" {
		override := *cfg
		override.Printer.Profile = nameFlag
		override.Printer.ProfileFile = ""
		return override.ResolveProfile()
	}
	return cfg.ResolveProfile()
}

func (c *commandContext) openSpool() (*spool.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return spool.Open(cfg.Spool.Path)
}
