package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSizes(); err != nil {
		return err
	}
	if err := c.validateDate(); err != nil {
		return err
	}
	if err := c.validateDuplicates(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSizes() error {
	if c.Sizes.LightMaxMB <= 0 {
		return errors.New("sizes.light_max_mb must be positive")
	}
	if c.Sizes.MediumMaxMB <= c.Sizes.LightMaxMB {
		return fmt.Errorf("sizes.medium_max_mb (%d) must exceed sizes.light_max_mb (%d)", c.Sizes.MediumMaxMB, c.Sizes.LightMaxMB)
	}
	return nil
}

func (c *Config) validateDate() error {
	switch c.Date.Calendar {
	case "gregorian", "jalali":
		return nil
	default:
		return fmt.Errorf("date.calendar: unsupported value %q (expected gregorian or jalali)", c.Date.Calendar)
	}
}

func (c *Config) validateDuplicates() error {
	switch c.Duplicates.Hash {
	case "sha256", "md5":
	default:
		return fmt.Errorf("duplicates.hash: unsupported value %q (expected sha256 or md5)", c.Duplicates.Hash)
	}
	if c.Duplicates.Workers < 0 {
		return errors.New("duplicates.workers must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
