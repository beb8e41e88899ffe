// Package selection resolves each candidate group to its single best video
// and audio stream. Resolution area wins for video, sample rate for audio,
// with bitrate and path as deterministic tie-breaks.
package selection
