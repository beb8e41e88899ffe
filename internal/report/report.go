package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Attachment is the externally visible result of assembling one group.
// Records are immutable once built; the exporter owns the final collection.
type Attachment struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Timestamp  time.Time `json:"timestamp"`
	Size       int64     `json:"size"`
	SizePretty string    `json:"size_pretty"`
	Kind       string    `json:"kind"`
	// Thumbnail is null for image-only attachments, which are their own
	// preview.
	Thumbnail *string  `json:"thumbnail"`
	Duration  string   `json:"duration"`
	Sources   []string `json:"sources"`
}

// Export writes the attachment set to w as one indented JSON array, sorted
// by name. Assembly completes in nondeterministic order under concurrency;
// the sort keeps the report reproducible. An empty set still produces a
// valid empty array.
func Export(w io.Writer, attachments []Attachment) error {
	ordered := append([]Attachment(nil), attachments...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	if ordered == nil {
		ordered = []Attachment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ordered); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Summary aggregates the run outcome for the stderr diagnostics.
type Summary struct {
	Inputs           int
	ProbeFailures    int
	Groups           int
	Attachments      int
	AssemblyFailures int
}

// Complete reports whether every input ended up represented in the output.
func (s Summary) Complete() bool {
	return s.ProbeFailures == 0 && s.AssemblyFailures == 0
}
