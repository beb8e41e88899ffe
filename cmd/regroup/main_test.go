package main

import (
	"errors"
	"strings"
	"testing"

	"regroup/internal/report"
	"regroup/internal/services"
)

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.Wrap(services.ErrConfiguration, "config", "load", "", nil), 2},
		{services.Wrap(services.ErrDependency, "preflight", "check binaries", "ffmpeg missing", nil), 3},
		{services.Wrap(services.ErrProbe, "probe", "inspect", "/in/a.mp4", nil), 4},
		{services.Wrap(services.ErrAssembly, "assemble", "remux", "source_000.mp4", nil), 5},
		{services.Wrap(services.ErrExternalTool, "ffmpeg", "snapshot", "exit status 1", nil), 5},
		{errors.New("something else"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRenderAttachmentsTable(t *testing.T) {
	thumb := "/out/source_000.jpg"
	out := renderAttachmentsTable([]report.Attachment{
		{Name: "source_001.mp4", Kind: "audio", Duration: "00:42", SizePretty: "1.0 MB", Sources: []string{"/in/b.m4a"}},
		{Name: "source_000.mp4", Kind: "audio+video", Duration: "00:10", SizePretty: "4.1 MB", Thumbnail: &thumb, Sources: []string{"/in/a.mp4", "/in/a.m4a"}},
	})
	for _, want := range []string{"Name", "Kind", "Duration", "Size", "Sources", "source_000.mp4", "audio+video", "00:42", "1.0 MB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("attachments table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "source_000.mp4") > strings.Index(out, "source_001.mp4") {
		t.Fatalf("rows must be sorted by name:\n%s", out)
	}
}

func TestRootCommandRequiresInputs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected usage error without input files")
	}
}
