package media

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a duration as MM:SS, or HH:MM:SS once it reaches
// an hour. Sub-second precision is dropped; these strings are for humans.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatSize renders a byte count as a decimal human string ("4.2 MB").
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
