package correlate

import (
	"path/filepath"
	"time"

	"regroup/internal/media"
)

// Score is the weighted distance between a candidate descriptor and a
// group anchor. Duration delta is the primary signal, timestamp delta the
// secondary one, and path affinity the last-resort tiebreak. Scores are
// pure values so the matching heuristic stays unit-testable without any
// external tool.
type Score struct {
	DurationDelta  time.Duration
	TimestampDelta time.Duration
	PathAffinity   int
}

// ScorePair computes the distance between a candidate and a group anchor.
func ScorePair(candidate, anchor media.Descriptor) Score {
	return Score{
		DurationDelta:  absDuration(candidate.Duration - anchor.Duration),
		TimestampDelta: absDuration(candidate.Timestamp.Sub(anchor.Timestamp)),
		PathAffinity:   PathAffinity(candidate.Path, anchor.Path),
	}
}

// Eligible reports whether the duration delta falls within the tolerance.
// Ineligible candidates are never paired no matter how close the secondary
// signals look.
func (s Score) Eligible(tolerance time.Duration) bool {
	return s.DurationDelta <= tolerance
}

// Better reports whether s is a strictly closer match than other.
func (s Score) Better(other Score) bool {
	if s.DurationDelta != other.DurationDelta {
		return s.DurationDelta < other.DurationDelta
	}
	if s.TimestampDelta != other.TimestampDelta {
		return s.TimestampDelta < other.TimestampDelta
	}
	return s.PathAffinity > other.PathAffinity
}

// PathAffinity measures filename similarity as the length of the shared
// prefix of the two base names. Fragments scraped from the same asset tend
// to share a stem ("asset_360.mp4", "asset_720.mp4").
func PathAffinity(a, b string) int {
	baseA := filepath.Base(a)
	baseB := filepath.Base(b)
	limit := len(baseA)
	if len(baseB) < limit {
		limit = len(baseB)
	}
	shared := 0
	for shared < limit && baseA[shared] == baseB[shared] {
		shared++
	}
	return shared
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
