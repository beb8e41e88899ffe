package assemble

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"regroup/internal/correlate"
	"regroup/internal/media"
	"regroup/internal/selection"
)

// Task is one unit of assembly work: a group with its selection resolved
// and its output index fixed. Indices are assigned before dispatch so two
// tasks can never collide on an output filename no matter how the workers
// interleave.
type Task struct {
	Index     int
	Group     correlate.Group
	Selection selection.Selection
	// ImageName is the report name for image passthroughs. Usually the
	// source base name; when two passthrough sources share a base name the
	// plan suffixes the task index so report names stay unique.
	ImageName string
}

// PlanOptions carries the AV-sync policy knobs.
type PlanOptions struct {
	// SyncTolerance is the maximum timestamp divergence between a paired
	// audio and video stream. Pairs beyond it are rejected and emitted as
	// separate passthrough attachments rather than guessing a bad sync.
	SyncTolerance time.Duration
}

// Plan turns the partitioned groups into an ordered task list. Group order
// is already canonical, so the sequential indices are deterministic across
// runs and input permutations.
func Plan(groups []correlate.Group, opts PlanOptions) []Task {
	tasks := make([]Task, 0, len(groups))
	for _, group := range groups {
		for _, resolved := range resolveSync(group, opts) {
			tasks = append(tasks, Task{
				Index:     len(tasks),
				Group:     resolved,
				Selection: selection.Select(resolved),
			})
		}
	}
	nameImages(tasks)
	return tasks
}

// nameImages fixes the report names of image passthroughs. Distinct source
// files can share a base name ("a/shot.jpg", "b/shot.jpg"); colliding names
// get the task index appended so the report keys stay unique.
func nameImages(tasks []Task) {
	counts := make(map[string]int)
	for _, task := range tasks {
		if task.Selection.Class == selection.ClassImage {
			counts[filepath.Base(task.Selection.Image.Path)]++
		}
	}
	for i := range tasks {
		if tasks[i].Selection.Class != selection.ClassImage {
			continue
		}
		base := filepath.Base(tasks[i].Selection.Image.Path)
		if counts[base] > 1 {
			ext := filepath.Ext(base)
			base = fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(base, ext), tasks[i].Index, ext)
		}
		tasks[i].ImageName = base
	}
}

// resolveSync applies the trim-vs-reject policy. Trimming is never
// attempted: a wrongly trimmed pair cannot be repaired afterwards, so
// divergent pairs split into a video group (keeping any image) and an
// audio group.
func resolveSync(group correlate.Group, opts PlanOptions) []correlate.Group {
	if group.Premuxed() {
		return []correlate.Group{group}
	}
	sel := selection.Select(group)
	if sel.Video == nil || sel.Audio == nil {
		return []correlate.Group{group}
	}
	divergence := sel.Video.Timestamp.Sub(sel.Audio.Timestamp)
	if divergence < 0 {
		divergence = -divergence
	}
	if divergence <= opts.SyncTolerance {
		return []correlate.Group{group}
	}

	var visual, aural []media.Descriptor
	for _, m := range group.Members {
		if m.IsAudio() {
			aural = append(aural, m)
		} else {
			visual = append(visual, m)
		}
	}
	return []correlate.Group{
		{Members: visual},
		{Members: aural},
	}
}
