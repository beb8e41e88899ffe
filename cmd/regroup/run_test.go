package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"regroup/internal/report"
	"regroup/internal/services"
)

// writeStub installs an executable shell script at path.
func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

// stubTools builds fake ffprobe/ffmpeg binaries. The ffprobe stub prints
// the JSON sidecar recorded next to the input; the ffmpeg stub writes its
// last argument, which is always the output path.
func stubTools(t *testing.T) (ffprobe, ffmpeg string) {
	t.Helper()
	binDir := t.TempDir()
	ffprobe = filepath.Join(binDir, "ffprobe")
	ffmpeg = filepath.Join(binDir, "ffmpeg")
	writeStub(t, ffprobe, "#!/bin/sh\nfor a; do last=\"$a\"; done\ncat \"${last}.probe.json\"\n")
	writeStub(t, ffmpeg, "#!/bin/sh\nfor a; do last=\"$a\"; done\nprintf remuxed > \"$last\"\n")
	return ffprobe, ffmpeg
}

func writeInput(t *testing.T, dir, name, probeJSON string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.WriteFile(path+".probe.json", []byte(probeJSON), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
	return path
}

func writeToolConfig(t *testing.T, ffprobe, ffmpeg string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf("[tools]\nffprobe_binary = %q\nffmpeg_binary = %q\n", ffprobe, ffmpeg)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const videoProbe = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "duration": "10.000000", "width": 1280, "height": 720}
  ],
  "format": {
    "nb_streams": 1,
    "duration": "10.000000",
    "size": "4096",
    "bit_rate": "800000",
    "tags": {"creation_time": "2024-05-01T10:00:00.000000Z"}
  }
}`

const audioProbe = `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio", "duration": "10.200000", "sample_rate": "48000", "channels": 2}
  ],
  "format": {
    "nb_streams": 1,
    "duration": "10.200000",
    "size": "1024",
    "bit_rate": "128000",
    "tags": {"creation_time": "2024-05-01T10:00:00.000000Z"}
  }
}`

func TestRunPairsAudioWithVideo(t *testing.T) {
	ffprobe, ffmpeg := stubTools(t)
	cfgPath := writeToolConfig(t, ffprobe, ffmpeg)
	inDir := t.TempDir()
	outDir := t.TempDir()

	video := writeInput(t, inDir, "fragment_a.mp4", videoProbe)
	audio := writeInput(t, inDir, "fragment_b.m4a", audioProbe)

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-o", outDir, "-c", cfgPath, "--workers", "1", video, audio})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v\nstderr: %s", err, stderr.String())
	}

	var attachments []report.Attachment
	if err := json.Unmarshal(stdout.Bytes(), &attachments); err != nil {
		t.Fatalf("decode report: %v\nstdout: %s", err, stdout.String())
	}
	if len(attachments) != 1 {
		t.Fatalf("expected one attachment, got %d: %s", len(attachments), stdout.String())
	}

	got := attachments[0]
	if got.Name != "source_000.mp4" {
		t.Fatalf("unexpected name: %s", got.Name)
	}
	if got.Kind != "audio+video" {
		t.Fatalf("unexpected kind: %s", got.Kind)
	}
	if got.Duration != "00:10" {
		t.Fatalf("unexpected duration: %s", got.Duration)
	}
	if len(got.Sources) != 2 {
		t.Fatalf("expected both fragments as sources, got %v", got.Sources)
	}
	if got.Thumbnail == nil {
		t.Fatal("expected a thumbnail path")
	}

	if _, err := os.Stat(filepath.Join(outDir, "source_000.mp4")); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "source_000.jpg")); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
}

func TestRunUnrelatedInputsBecomeSeparateSources(t *testing.T) {
	ffprobe, ffmpeg := stubTools(t)
	cfgPath := writeToolConfig(t, ffprobe, ffmpeg)
	inDir := t.TempDir()
	outDir := t.TempDir()

	video := writeInput(t, inDir, "clip.mp4", videoProbe)
	// Duration far outside the matching tolerance.
	lonely := writeInput(t, inDir, "other.m4a", `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio", "duration": "42.000000", "sample_rate": "44100", "channels": 2}
  ],
  "format": {"nb_streams": 1, "duration": "42.000000", "size": "512", "bit_rate": "96000"}
}`)

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", outDir, "-c", cfgPath, video, lonely})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var attachments []report.Attachment
	if err := json.Unmarshal(stdout.Bytes(), &attachments); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("expected two attachments, got %d", len(attachments))
	}
	if attachments[0].Name != "source_000.mp4" || attachments[1].Name != "source_001.mp4" {
		t.Fatalf("unexpected names: %s, %s", attachments[0].Name, attachments[1].Name)
	}
}

func TestRunUnreadableInputYieldsProbeError(t *testing.T) {
	ffprobe, ffmpeg := stubTools(t)
	cfgPath := writeToolConfig(t, ffprobe, ffmpeg)
	inDir := t.TempDir()
	outDir := t.TempDir()

	video := writeInput(t, inDir, "clip.mp4", videoProbe)
	missing := filepath.Join(inDir, "corrupt.mp4")
	if err := os.WriteFile(missing, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write corrupt input: %v", err)
	}
	// No sidecar: the ffprobe stub exits nonzero for this input.

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", outDir, "-c", cfgPath, video, missing})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected probe failure to surface")
	}
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected probe classification, got: %v", err)
	}
	if exitCode(err) != 4 {
		t.Fatalf("expected exit code 4, got %d", exitCode(err))
	}

	// The readable input is still assembled and reported.
	var attachments []report.Attachment
	if err := json.Unmarshal(stdout.Bytes(), &attachments); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("expected surviving attachment, got %d", len(attachments))
	}
}

func TestRunRejectsMissingOutputDirectory(t *testing.T) {
	ffprobe, ffmpeg := stubTools(t)
	cfgPath := writeToolConfig(t, ffprobe, ffmpeg)
	inDir := t.TempDir()
	video := writeInput(t, inDir, "clip.mp4", videoProbe)

	outDir := filepath.Join(t.TempDir(), "nope")

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", outDir, "-c", cfgPath, video})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected a missing output directory to abort the run")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration classification, got: %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode(err))
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Fatalf("output directory must not be created by the tool: %v", statErr)
	}
	if stdout.Len() != 0 {
		t.Fatalf("no report expected before preflight passes, got: %s", stdout.String())
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	out.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "validate", "-c", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate: %v\noutput: %s", err, out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected refusal without --overwrite")
	}
}
