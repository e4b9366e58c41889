package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"linguistica/internal/config"
	"linguistica/internal/logging"
	"linguistica/internal/params"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
	runID      string
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the invocation logger once. Every record carries a run ID
// so log lines from one invocation can be grouped in the JSON log file.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.runID = uuid.NewString()
		logger, err := logging.NewFromConfig(cfg, c.runID)
		if err != nil {
			c.loggerErr = fmt.Errorf("create logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// registry resolves the parameter registry for the loaded configuration and
// warns about override names that no stage reads.
func (c *commandContext) registry() (*params.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	reg, overrides, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	logger = logging.NewComponentLogger(logger, "registry")
	for _, name := range overrides.Unknown {
		logging.WarnWithContext(logger, "ignoring unknown parameter override", "parameter_unknown",
			logging.String("parameter", name),
			logging.String("source", overrides.Path),
			logging.String(logging.FieldErrorHint, "remove the entry or fix its spelling"),
			logging.String(logging.FieldImpact, "the override has no effect"),
		)
	}
	if overrides.Path != "" {
		logger.Debug("parameter overrides loaded",
			logging.String("source", overrides.Path),
			logging.Int("count", len(overrides.Values)),
		)
	}
	return reg, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
