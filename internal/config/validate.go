package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorrelation(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCorrelation() error {
	if c.Correlation.DurationToleranceMS < 0 {
		return errors.New("correlation.duration_tolerance_ms must be >= 0")
	}
	if c.Correlation.TimestampToleranceSeconds < 0 {
		return errors.New("correlation.timestamp_tolerance_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.SyncToleranceSeconds < 0 {
		return errors.New("assembly.sync_tolerance_seconds must be >= 0")
	}
	switch c.Assembly.SyncPolicy {
	case "split":
	case "trim":
		return errors.New("assembly.sync_policy \"trim\" is not implemented; divergent pairs are always split")
	default:
		return fmt.Errorf("assembly.sync_policy must be \"split\", got %q", c.Assembly.SyncPolicy)
	}
	base := strings.TrimSpace(c.Assembly.OutputBaseName)
	if base == "" {
		return errors.New("assembly.output_base_name must be set")
	}
	if strings.ContainsAny(base, "/\\") {
		return errors.New("assembly.output_base_name must not contain path separators")
	}
	if c.Assembly.Workers < 0 {
		return errors.New("assembly.workers must be >= 0 (zero selects one worker per CPU)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
}
