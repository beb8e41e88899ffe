// Package ffprobe provides a typed wrapper around ffprobe JSON output and
// turns probe results into stream descriptors.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, size, rates, tags)
//   - Format: container-level metadata (duration, size, creation time)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Extract: probes one file and yields media.Descriptor values, with
//     still-image codecs split off from real video and pre-muxed files
//     flagged as complete
package ffprobe
