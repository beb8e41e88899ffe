// Package preflight provides readiness checks for the external binaries
// and filesystem paths a regroup run depends on.
//
// The CLI calls Ensure before probing any input: a missing ffmpeg or
// ffprobe aborts the run as a dependency error, and an unusable output
// directory aborts it as a configuration error. RunAll exposes the same
// checks individually for diagnostic display.
package preflight
