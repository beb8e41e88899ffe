package correlate

import (
	"sort"
	"time"

	"regroup/internal/media"
)

// Group is a candidate attachment: a maximal set of descriptors believed to
// originate from one original asset. Members keep the engine's processing
// order (duration descending, then path); selection happens later.
type Group struct {
	Members []media.Descriptor
}

// Anchor returns the member the group was seeded with. Scoring and
// tie-breaks compare candidates against the anchor.
func (g Group) Anchor() media.Descriptor {
	return g.Members[0]
}

// Timestamp returns the earliest member timestamp, the group's best-known
// creation time.
func (g Group) Timestamp() time.Time {
	ts := g.Members[0].Timestamp
	for _, m := range g.Members[1:] {
		if m.Timestamp.Before(ts) {
			ts = m.Timestamp
		}
	}
	return ts
}

// ReferenceDuration returns the duration of the first non-image member, or
// zero when the group holds only images.
func (g Group) ReferenceDuration() time.Duration {
	for _, m := range g.Members {
		if !m.IsImage() {
			return m.Duration
		}
	}
	return 0
}

// Premuxed reports whether the group wraps a single already-complete file.
func (g Group) Premuxed() bool {
	return g.Members[0].Premuxed
}

// HasAudio reports whether any member carries an audio stream.
func (g Group) HasAudio() bool {
	for _, m := range g.Members {
		if m.IsAudio() {
			return true
		}
	}
	return false
}

// HasVideo reports whether any member carries a real video stream.
func (g Group) HasVideo() bool {
	for _, m := range g.Members {
		if m.IsVideo() {
			return true
		}
	}
	return false
}

// HasImage reports whether any member is a still image.
func (g Group) HasImage() bool {
	for _, m := range g.Members {
		if m.IsImage() {
			return true
		}
	}
	return false
}

// HasVideoResolution reports whether a video member with the given frame
// size is already present. Resolution variants of the same asset differ in
// size; an exact duplicate size means a separate asset.
func (g Group) HasVideoResolution(res *media.Resolution) bool {
	if res == nil {
		return false
	}
	for _, m := range g.Members {
		if m.IsVideo() && m.Resolution != nil && *m.Resolution == *res {
			return true
		}
	}
	return false
}

// Span returns the temporal window the group covers: earliest timestamp
// through that timestamp plus the reference duration.
func (g Group) Span() (time.Time, time.Time) {
	start := g.Timestamp()
	return start, start.Add(g.ReferenceDuration())
}

// ContainsTime reports whether ts falls inside the group span widened by
// the given tolerance on both ends.
func (g Group) ContainsTime(ts time.Time, tolerance time.Duration) bool {
	start, end := g.Span()
	return !ts.Before(start.Add(-tolerance)) && !ts.After(end.Add(tolerance))
}

// Sources returns the member source paths sorted ascending, deduplicated.
// Pre-muxed files contribute several descriptors but a single source.
func (g Group) Sources() []string {
	seen := make(map[string]struct{}, len(g.Members))
	sources := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if _, ok := seen[m.Path]; ok {
			continue
		}
		seen[m.Path] = struct{}{}
		sources = append(sources, m.Path)
	}
	sort.Strings(sources)
	return sources
}
