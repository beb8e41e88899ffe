// Package services defines shared utilities for the external tool
// integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with
//     their category (configuration, dependency, probe, assembly) so the
//     CLI can map them onto distinct exit codes.
//   - Subpackages wrapping the external binaries the pipeline shells out
//     to (ffmpeg).
//
// Use these helpers when wiring new tool calls so error handling stays
// uniform across the pipeline.
package services
