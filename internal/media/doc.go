// Package media defines the stream descriptor model shared by the
// correlation, selection, and assembly stages.
//
// Key types:
//   - Descriptor: per-stream metadata extracted by probing one input file
//   - Kind: closed audio/video/image variant
//   - Resolution: frame size, ordered by pixel area
//
// Formatting helpers produce the human-readable duration and size strings
// that appear in the final report.
package media
