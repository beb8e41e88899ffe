// Package report defines the final attachment record and serializes the
// completed set into the machine-readable JSON array on stdout.
package report
