// Package logging builds the slog loggers used across platen.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for machine consumption. Helpers here also
// standardize the attribute keys commands and internal packages log
// with, so a device path or job ID always appears under the same key.
package logging
