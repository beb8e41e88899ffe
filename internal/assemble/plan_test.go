package assemble

import (
	"testing"
	"time"

	"regroup/internal/correlate"
	"regroup/internal/media"
)

var planBase = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func pairedGroup(videoTS, audioTS time.Time) correlate.Group {
	return correlate.Group{Members: []media.Descriptor{
		{
			Path:       "/in/v.mp4",
			Kind:       media.KindVideo,
			Duration:   30 * time.Second,
			Timestamp:  videoTS,
			Resolution: &media.Resolution{Width: 1280, Height: 720},
		},
		{
			Path:      "/in/a.mp4",
			Kind:      media.KindAudio,
			Duration:  30 * time.Second,
			Timestamp: audioTS,
		},
	}}
}

func TestPlanAssignsSequentialIndices(t *testing.T) {
	groups := []correlate.Group{
		pairedGroup(planBase, planBase),
		{Members: []media.Descriptor{{Path: "/in/x.jpg", Kind: media.KindImage, Timestamp: planBase}}},
		pairedGroup(planBase, planBase),
	}

	tasks := Plan(groups, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.Index != i {
			t.Fatalf("task %d carries index %d", i, task.Index)
		}
	}
}

func TestPlanKeepsAlignedPairsTogether(t *testing.T) {
	groups := []correlate.Group{pairedGroup(planBase, planBase.Add(3*time.Second))}
	tasks := Plan(groups, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 1 {
		t.Fatalf("aligned pair must stay one task, got %d", len(tasks))
	}
	if tasks[0].Selection.Video == nil || tasks[0].Selection.Audio == nil {
		t.Fatal("expected both streams selected")
	}
}

func TestPlanSplitsDivergentPairs(t *testing.T) {
	groups := []correlate.Group{pairedGroup(planBase, planBase.Add(time.Hour))}
	tasks := Plan(groups, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 2 {
		t.Fatalf("divergent pair must split into passthroughs, got %d tasks", len(tasks))
	}
	if tasks[0].Selection.Video == nil || tasks[0].Selection.Audio != nil {
		t.Fatalf("first split task should be video-only, got %+v", tasks[0].Selection)
	}
	if tasks[1].Selection.Audio == nil || tasks[1].Selection.Video != nil {
		t.Fatalf("second split task should be audio-only, got %+v", tasks[1].Selection)
	}
	if tasks[0].Index == tasks[1].Index {
		t.Fatal("split tasks must not share an output index")
	}
}

func TestPlanSplitKeepsImageWithVideo(t *testing.T) {
	group := pairedGroup(planBase, planBase.Add(time.Hour))
	group.Members = append(group.Members, media.Descriptor{
		Path: "/in/shot.jpg", Kind: media.KindImage, Timestamp: planBase,
	})

	tasks := Plan([]correlate.Group{group}, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	videoSources := tasks[0].Group.Sources()
	if len(videoSources) != 2 {
		t.Fatalf("image should follow the video half, got %v", videoSources)
	}
}

func imageGroup(path string) correlate.Group {
	return correlate.Group{Members: []media.Descriptor{
		{Path: path, Kind: media.KindImage, Timestamp: planBase},
	}}
}

func TestPlanKeepsUniqueImageNames(t *testing.T) {
	groups := []correlate.Group{imageGroup("/in/a/shot.jpg"), imageGroup("/in/cover.png")}
	tasks := Plan(groups, PlanOptions{SyncTolerance: 5 * time.Second})
	if tasks[0].ImageName != "shot.jpg" {
		t.Fatalf("unique base name must pass through unchanged, got %s", tasks[0].ImageName)
	}
	if tasks[1].ImageName != "cover.png" {
		t.Fatalf("unique base name must pass through unchanged, got %s", tasks[1].ImageName)
	}
}

func TestPlanDisambiguatesDuplicateImageNames(t *testing.T) {
	groups := []correlate.Group{
		imageGroup("/in/a/shot.jpg"),
		pairedGroup(planBase, planBase),
		imageGroup("/in/b/shot.jpg"),
	}

	tasks := Plan(groups, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].ImageName != "shot_000.jpg" {
		t.Fatalf("expected index-suffixed name, got %s", tasks[0].ImageName)
	}
	if tasks[2].ImageName != "shot_002.jpg" {
		t.Fatalf("expected index-suffixed name, got %s", tasks[2].ImageName)
	}
	if tasks[1].ImageName != "" {
		t.Fatalf("non-image task must not carry an image name, got %s", tasks[1].ImageName)
	}
}

func TestPlanNeverSplitsPremuxed(t *testing.T) {
	group := correlate.Group{Members: []media.Descriptor{
		{
			Path: "/in/full.mp4", Kind: media.KindVideo, Duration: 30 * time.Second,
			Timestamp: planBase, Premuxed: true,
			Resolution: &media.Resolution{Width: 1280, Height: 720},
		},
		{
			Path: "/in/full.mp4", Kind: media.KindAudio, Duration: 30 * time.Second,
			Timestamp: planBase.Add(time.Hour), Premuxed: true,
		},
	}}

	tasks := Plan([]correlate.Group{group}, PlanOptions{SyncTolerance: 5 * time.Second})
	if len(tasks) != 1 {
		t.Fatalf("premuxed containers are already in sync, got %d tasks", len(tasks))
	}
}
