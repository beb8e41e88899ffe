package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"regroup/internal/media"
)

// Codecs that ffprobe reports as video streams but are still images.
var imageCodecs = map[string]struct{}{
	"png":   {},
	"mjpeg": {},
	"bmp":   {},
	"webp":  {},
}

// Extract probes one input file and converts the result into stream
// descriptors. A file with no audio, video, or image streams is an error;
// the caller excludes that file and keeps going.
func Extract(ctx context.Context, binary string, path string) ([]media.Descriptor, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return nil, err
	}
	if len(result.Streams) == 0 {
		return nil, fmt.Errorf("no streams in %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	size := result.SizeBytes()
	if size == 0 {
		size = info.Size()
	}

	hasAudio := false
	hasVideo := false
	var descriptors []media.Descriptor
	for _, stream := range result.Streams {
		kind, ok := classify(stream)
		if !ok {
			// Data/subtitle streams carry no correlation signal.
			continue
		}
		desc := media.Descriptor{
			Path:        path,
			Kind:        kind,
			Codec:       strings.ToLower(strings.TrimSpace(stream.CodecName)),
			Timestamp:   timestampFor(result, stream, info.ModTime()),
			Size:        size,
			StreamCount: result.Format.NBStreams,
		}
		switch kind {
		case media.KindAudio:
			hasAudio = true
			desc.Duration = durationFor(result, stream)
			desc.BitRate = bitRateFor(result, stream)
			desc.SampleRate = stream.SampleRateHz()
		case media.KindVideo:
			hasVideo = true
			desc.Duration = durationFor(result, stream)
			desc.BitRate = bitRateFor(result, stream)
			desc.Resolution = &media.Resolution{Width: stream.Width, Height: stream.Height}
		case media.KindImage:
			desc.Resolution = &media.Resolution{Width: stream.Width, Height: stream.Height}
		}
		descriptors = append(descriptors, desc)
	}

	if len(descriptors) == 0 {
		return nil, errors.New("no usable audio, video, or image streams")
	}

	if hasAudio && hasVideo {
		for i := range descriptors {
			descriptors[i].Premuxed = true
		}
	}
	return descriptors, nil
}

func classify(stream Stream) (media.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(stream.CodecType)) {
	case "audio":
		return media.KindAudio, true
	case "video":
		if _, still := imageCodecs[strings.ToLower(stream.CodecName)]; still {
			return media.KindImage, true
		}
		return media.KindVideo, true
	default:
		return 0, false
	}
}

func durationFor(result Result, stream Stream) time.Duration {
	secs := stream.DurationSeconds()
	if secs == 0 {
		secs = result.DurationSeconds()
	}
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func bitRateFor(result Result, stream Stream) int64 {
	if rate := stream.BitRateBPS(); rate > 0 {
		return rate
	}
	return result.BitRate()
}

// timestampFor picks the best-known timestamp: the container creation tag,
// then the stream creation tag, then the file modification time.
func timestampFor(result Result, stream Stream, modTime time.Time) time.Time {
	if ts, ok := parseCreationTime(result.CreationTime()); ok {
		return ts
	}
	if ts, ok := parseCreationTime(stream.CreationTime()); ok {
		return ts
	}
	return modTime.UTC()
}

var creationTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
}

func parseCreationTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range creationTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
