// Package config loads, normalizes, and validates platen configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every
// knob the CLI needs: which printer profile to use, where the device
// lives, encoding behavior, spool location, and log output.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors.
package config
