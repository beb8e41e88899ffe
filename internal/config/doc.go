// Package config loads and validates regroup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every
// tunable the pipeline exposes: grouping tolerances, the AV-sync policy,
// output naming, worker count, and external binary overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
