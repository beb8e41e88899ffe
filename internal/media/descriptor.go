package media

import (
	"fmt"
	"time"
)

// Kind identifies the payload of a single stream. It is a closed set:
// every stage switches over it exhaustively.
type Kind int

const (
	KindAudio Kind = iota
	KindVideo
	KindImage
)

// String returns the lowercase kind label used in logs and reports.
func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Resolution is a video or image frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Area returns the pixel count used to rank resolution variants.
func (r Resolution) Area() int64 {
	return int64(r.Width) * int64(r.Height)
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Descriptor captures the metadata of one physical stream found in one
// input file. Descriptors are owned by the correlation engine until they
// are assigned to a group.
type Descriptor struct {
	// Path is the absolute path of the source file.
	Path string
	Kind Kind
	// Codec is the codec identifier reported by the probe (h264, aac, png...).
	Codec string
	// Duration is zero for images.
	Duration time.Duration
	// Timestamp is best effort: container creation tag, stream creation
	// tag, or the file modification time, in that preference order.
	Timestamp time.Time
	// Resolution is nil for audio streams.
	Resolution *Resolution
	// BitRate and SampleRate are tie-break signals only.
	BitRate    int64
	SampleRate int
	// Size is the container size in bytes.
	Size int64
	// StreamCount is the number of streams in the source container.
	StreamCount int
	// Premuxed marks streams whose source file already carries both an
	// audio and a video track; such files are complete on their own.
	Premuxed bool
}

// IsAudio reports whether the descriptor carries an audio stream.
func (d Descriptor) IsAudio() bool { return d.Kind == KindAudio }

// IsVideo reports whether the descriptor carries a real video stream.
func (d Descriptor) IsVideo() bool { return d.Kind == KindVideo }

// IsImage reports whether the descriptor carries a still image.
func (d Descriptor) IsImage() bool { return d.Kind == KindImage }
