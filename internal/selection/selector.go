package selection

import (
	"sort"

	"regroup/internal/correlate"
	"regroup/internal/media"
)

// Class is the attachment classification derived from a group's selected
// streams. The labels match the report schema.
type Class int

const (
	ClassAudioVideo Class = iota
	ClassVideo
	ClassAudio
	ClassImage
)

func (c Class) String() string {
	switch c {
	case ClassAudioVideo:
		return "audio+video"
	case ClassVideo:
		return "video"
	case ClassAudio:
		return "audio"
	case ClassImage:
		return "image"
	default:
		return "unknown"
	}
}

// Selection is the resolved choice for one group: the single best video and
// audio stream, plus the members that lost the contest. Losers stay on the
// record for source attribution but never reach the muxer.
type Selection struct {
	Class Class
	Video *media.Descriptor
	Audio *media.Descriptor
	// Image is the thumbnail surrogate, set only when the group has no
	// real video stream.
	Image *media.Descriptor
	// Duplicates are the unselected same-kind members.
	Duplicates []media.Descriptor
}

// Select picks the best streams for a group. Pure function of the group's
// members; no side effects.
func Select(group correlate.Group) Selection {
	var videos, audios, images []media.Descriptor
	for _, m := range group.Members {
		switch m.Kind {
		case media.KindVideo:
			videos = append(videos, m)
		case media.KindAudio:
			audios = append(audios, m)
		case media.KindImage:
			images = append(images, m)
		}
	}

	sel := Selection{}
	if len(videos) > 0 {
		sortVideos(videos)
		sel.Video = &videos[0]
		sel.Duplicates = append(sel.Duplicates, videos[1:]...)
	}
	if len(audios) > 0 {
		sortAudios(audios)
		sel.Audio = &audios[0]
		sel.Duplicates = append(sel.Duplicates, audios[1:]...)
	}
	if len(images) > 0 {
		if sel.Video == nil {
			sel.Image = &images[0]
			sel.Duplicates = append(sel.Duplicates, images[1:]...)
		} else {
			sel.Duplicates = append(sel.Duplicates, images...)
		}
	}

	switch {
	case sel.Video != nil && sel.Audio != nil:
		sel.Class = ClassAudioVideo
	case sel.Video != nil:
		sel.Class = ClassVideo
	case sel.Audio != nil:
		sel.Class = ClassAudio
	default:
		sel.Class = ClassImage
	}
	return sel
}

// sortVideos ranks by resolution area descending, then bitrate descending,
// then smallest path.
func sortVideos(videos []media.Descriptor) {
	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if area(a) != area(b) {
			return area(a) > area(b)
		}
		if a.BitRate != b.BitRate {
			return a.BitRate > b.BitRate
		}
		return a.Path < b.Path
	})
}

// sortAudios ranks by sample rate descending, then bitrate descending,
// then smallest path.
func sortAudios(audios []media.Descriptor) {
	sort.SliceStable(audios, func(i, j int) bool {
		a, b := audios[i], audios[j]
		if a.SampleRate != b.SampleRate {
			return a.SampleRate > b.SampleRate
		}
		if a.BitRate != b.BitRate {
			return a.BitRate > b.BitRate
		}
		return a.Path < b.Path
	})
}

func area(d media.Descriptor) int64 {
	if d.Resolution == nil {
		return 0
	}
	return d.Resolution.Area()
}
