// Package spool persists print jobs in a local SQLite database.
//
// Spooling decouples submitting text from having a reachable printer:
// jobs wait as pending rows and a later `platen jobs run` drains them
// in submission order. The stored payload is the original text plus the
// profile it was submitted under, not rendered bytes, so encoding
// happens at print time against the then-current configuration.
package spool
