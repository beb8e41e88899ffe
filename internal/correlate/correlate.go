package correlate

import (
	"sort"
	"time"

	"regroup/internal/media"
)

// Options carries the matching tolerances. Both are tunable; the defaults
// live in the config package.
type Options struct {
	// DurationTolerance is the maximum duration delta between two encodes
	// of the same original media.
	DurationTolerance time.Duration
	// TimestampTolerance widens the window used for timestamp-based
	// matching of resolution variants and images.
	TimestampTolerance time.Duration
}

// Partition splits the full descriptor multiset into candidate groups.
// Every descriptor lands in exactly one group; ambiguity degrades to more,
// smaller groups rather than an error. The result is independent of the
// caller's input ordering: descriptors are processed in a canonical order
// and all tie-breaks are explicit.
func Partition(descriptors []media.Descriptor, opts Options) []Group {
	ordered := canonicalOrder(descriptors)

	var groups []Group
	premuxed := make(map[string]int)
	var images []media.Descriptor

	for _, desc := range ordered {
		switch {
		case desc.Premuxed:
			// An already-complete container forms its own group; its
			// audio and video descriptors share one file.
			if idx, ok := premuxed[desc.Path]; ok {
				groups[idx].Members = append(groups[idx].Members, desc)
				continue
			}
			premuxed[desc.Path] = len(groups)
			groups = append(groups, Group{Members: []media.Descriptor{desc}})
		case desc.IsImage():
			// Images match against finished audio/video groups below.
			images = append(images, desc)
		default:
			idx, ok := bestGroup(groups, desc, opts)
			if !ok {
				groups = append(groups, Group{Members: []media.Descriptor{desc}})
				continue
			}
			groups[idx].Members = append(groups[idx].Members, desc)
		}
	}

	for _, img := range images {
		idx, ok := bestImageHost(groups, img, opts.TimestampTolerance)
		if !ok {
			groups = append(groups, Group{Members: []media.Descriptor{img}})
			continue
		}
		groups[idx].Members = append(groups[idx].Members, img)
	}

	return groups
}

// canonicalOrder sorts descriptors by duration descending, then path, then
// kind. Longer fragments seed groups first so shorter variants attach to
// them, and the fixed ordering keeps the partition permutation-independent.
func canonicalOrder(descriptors []media.Descriptor) []media.Descriptor {
	ordered := append([]media.Descriptor(nil), descriptors...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Duration != b.Duration {
			return a.Duration > b.Duration
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Kind < b.Kind
	})
	return ordered
}

// bestGroup finds the closest eligible group for an audio or video
// descriptor. Ties resolve to the smaller score, then to the group with
// the lexicographically smallest anchor path.
func bestGroup(groups []Group, desc media.Descriptor, opts Options) (int, bool) {
	bestIdx := -1
	var best Score
	for idx, group := range groups {
		if !eligible(group, desc, opts) {
			continue
		}
		score := ScorePair(desc, group.Anchor())
		if !score.Eligible(opts.DurationTolerance) {
			continue
		}
		switch {
		case bestIdx < 0:
			bestIdx, best = idx, score
		case score.Better(best):
			bestIdx, best = idx, score
		case !best.Better(score) && group.Anchor().Path < groups[bestIdx].Anchor().Path:
			// Fully tied scores fall back to the smallest anchor path.
			bestIdx, best = idx, score
		}
	}
	return bestIdx, bestIdx >= 0
}

func eligible(group Group, desc media.Descriptor, opts Options) bool {
	if group.Premuxed() {
		return false
	}
	if desc.IsAudio() {
		return !group.HasAudio()
	}
	// A second video joins only as a resolution variant of the same
	// timespan: same-size duplicates stay apart, and its timestamp must
	// agree with the group, not just with the audio.
	if group.HasVideoResolution(desc.Resolution) {
		return false
	}
	if group.HasVideo() {
		delta := absDuration(desc.Timestamp.Sub(group.Timestamp()))
		if delta > opts.TimestampTolerance {
			return false
		}
	}
	return true
}

// bestImageHost finds the audio/video group whose span covers the image
// timestamp. A group takes at most one image; images with no temporal
// overlap stay standalone and pass through unchanged.
func bestImageHost(groups []Group, img media.Descriptor, tolerance time.Duration) (int, bool) {
	bestIdx := -1
	var bestDelta time.Duration
	for idx, group := range groups {
		if group.Premuxed() || group.HasImage() {
			continue
		}
		if !group.HasAudio() && !group.HasVideo() {
			continue
		}
		if !group.ContainsTime(img.Timestamp, tolerance) {
			continue
		}
		delta := absDuration(img.Timestamp.Sub(group.Timestamp()))
		switch {
		case bestIdx < 0:
			bestIdx, bestDelta = idx, delta
		case delta < bestDelta:
			bestIdx, bestDelta = idx, delta
		case delta == bestDelta && group.Anchor().Path < groups[bestIdx].Anchor().Path:
			bestIdx, bestDelta = idx, delta
		}
	}
	return bestIdx, bestIdx >= 0
}
