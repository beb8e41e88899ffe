// Package logging builds the slog loggers used across regroup.
//
// All diagnostics are written to stderr so stdout stays machine-readable
// for the attachment report. Two formats are supported: a compact console
// layout with key=value attributes, and line-delimited JSON.
package logging
