// Package profile models printer capability profiles: the ordered set of
// single-byte code pages a printer offers and the device selector assigned
// to each one.
//
// Code pages are backed by golang.org/x/text/encoding/charmap tables, so a
// profile can only offer encodings the registry in this package knows about.
// Profiles come from two sources: built-in tables for common ESC/POS
// printers, and user-supplied TOML files for devices with unusual selector
// assignments.
//
// Profiles are loaded once per printer and are read-only afterwards; the
// encoding engine treats the declared page order as the tie-break order.
package profile
