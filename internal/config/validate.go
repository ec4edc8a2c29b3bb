package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateIdentify(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.File == "" {
			return errors.New("catalog.file must be set when catalog.source is \"file\"")
		}
	case "remote":
		if c.Catalog.BaseURL == "" {
			return errors.New("catalog.base_url must be set when catalog.source is \"remote\"")
		}
	default:
		return fmt.Errorf("catalog.source must be \"file\" or \"remote\", got %q", c.Catalog.Source)
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.StabilityWindowMS < 0 {
		return errors.New("scan.stability_window_ms must not be negative")
	}
	if c.Scan.DedupWindowSeconds < 0 {
		return errors.New("scan.dedup_window_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateIdentify() error {
	if c.Identify.AutoConfirmThreshold < 0 || c.Identify.AutoConfirmThreshold > 100 {
		return errors.New("identify.auto_confirm_threshold must be between 0 and 100")
	}
	if c.Identify.DisambiguationMargin < 0 {
		return errors.New("identify.disambiguation_margin must not be negative")
	}
	if c.Identify.CandidateFloor < 0 {
		return errors.New("identify.candidate_floor must not be negative")
	}
	if c.Identify.CandidateLimit < 0 {
		return errors.New("identify.candidate_limit must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	return nil
}
