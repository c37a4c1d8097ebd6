package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"platen/internal/profile"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePrinter(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateSpool(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePrinter() error {
	if c.Printer.ProfileFile != "" {
		return nil
	}
	if _, ok := profile.Builtin(c.Printer.Profile); !ok {
		return fmt.Errorf("printer.profile %q is not a built-in profile (available: %s); set printer.profile_file for a custom one",
			c.Printer.Profile, strings.Join(profile.BuiltinNames(), ", "))
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if count := utf8.RuneCountInString(c.Encoding.Fallback); count != 1 {
		return fmt.Errorf("encoding.fallback must be exactly one character, got %d", count)
	}
	for key, value := range map[string]string{
		"encoding.initial": c.Encoding.Initial,
		"encoding.pinned":  c.Encoding.Pinned,
	} {
		if value == "" {
			continue
		}
		if _, ok := profile.Canonical(value); !ok {
			return fmt.Errorf("%s: unknown encoding %q", key, value)
		}
	}
	return nil
}

func (c *Config) validateSpool() error {
	if c.Spool.Enabled && c.Spool.Path == "" {
		return errors.New("spool.path must be set when spool.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}
	return nil
}

// ResolveProfile loads the configured capability profile: the custom
// profile file when one is set, the named built-in otherwise.
func (c *Config) ResolveProfile() (*profile.Profile, error) {
	if c.Printer.ProfileFile != "" {
		return profile.Load(c.Printer.ProfileFile)
	}
	prof, ok := profile.Builtin(c.Printer.Profile)
	if !ok {
		return nil, fmt.Errorf("unknown printer profile %q", c.Printer.Profile)
	}
	return prof, nil
}
