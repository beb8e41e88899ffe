// Package ffmpeg wraps the ffmpeg command line for the two operations the
// assembler needs: stream-copy remuxing into mp4 and single-frame thumbnail
// grabs with a play-indicator overlay. The audio-only placeholder artwork
// and the overlay icon ship embedded in the binary.
package ffmpeg
