package ffmpeg

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"regroup/internal/services"
)

var commandContext = exec.CommandContext

//go:embed assets/audio-placeholder.png
var audioPlaceholderPNG []byte

//go:embed assets/play-overlay.png
var playOverlayPNG []byte

// Engine defines the media operations the assembler depends on. The CLI
// implementation shells out to ffmpeg; tests substitute a fake.
type Engine interface {
	// Remux stream-copies the given inputs into an mp4 container at
	// outputPath. Either input may be empty; passing the same path twice
	// collapses to a single-input remux for pre-muxed files.
	Remux(ctx context.Context, videoPath, audioPath, outputPath string) error
	// Snapshot grabs one frame from source with the play-overlay
	// composited on top. The seek point scales with the source duration.
	Snapshot(ctx context.Context, source string, duration time.Duration, outputPath string) error
	// AudioPlaceholder writes the static audio-only artwork to outputPath.
	AudioPlaceholder(outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line tool. All invocations are stream-copy
// or single-frame grabs; the client never transcodes.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Remux implements Engine.
func (c *CLI) Remux(ctx context.Context, videoPath, audioPath, outputPath string) error {
	if outputPath == "" {
		return errors.New("output path required")
	}
	if videoPath == audioPath {
		audioPath = ""
	}

	args := []string{"-hide_banner", "-v", "error", "-y"}
	inputs := 0
	for _, input := range []string{audioPath, videoPath} {
		if strings.TrimSpace(input) == "" {
			continue
		}
		args = append(args, "-i", input)
		inputs++
	}
	if inputs == 0 {
		return errors.New("at least one input required")
	}
	args = append(args, "-c", "copy", "-f", "mp4", outputPath)

	return c.run(ctx, "remux", args)
}

// Snapshot implements Engine. The overlay asset is written to a temp file
// for the duration of the call because ffmpeg needs it as a second input.
func (c *CLI) Snapshot(ctx context.Context, source string, duration time.Duration, outputPath string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("source required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	overlay := filepath.Join(os.TempDir(), uuid.Must(uuid.NewV7()).String()+".png")
	if err := os.WriteFile(overlay, playOverlayPNG, 0o644); err != nil {
		return fmt.Errorf("write overlay asset: %w", err)
	}
	defer os.Remove(overlay)

	args := []string{
		"-hide_banner", "-v", "error", "-y",
		"-ss", seekPoint(duration),
		"-i", source,
		// Loop the overlay so a frame exists at the video's seek point.
		"-loop", "1",
		"-i", overlay,
		// scale2ref sizes the overlay against the video frame, then the
		// overlay filter centers it. Kept on the ffmpeg 6 graph; newer
		// releases accept it with a deprecation warning.
		"-filter_complex",
		"[1:v][0:v]scale2ref=w='min(main_w,main_h)*0.4':h='min(main_w,main_h)*0.4'[logo][video]; [video][logo]overlay=(W-w)/2:(H-h)/2:shortest=1",
		"-frames:v", "1",
		"-c:v", "mjpeg",
		"-f", "image2",
		outputPath,
	}
	if err := c.run(ctx, "snapshot", args); err != nil {
		return err
	}

	// ffmpeg can exit zero without producing a frame on very short inputs.
	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("snapshot produced no file at %s", outputPath)
	}
	return nil
}

// AudioPlaceholder implements Engine.
func (c *CLI) AudioPlaceholder(outputPath string) error {
	if outputPath == "" {
		return errors.New("output path required")
	}
	if err := os.WriteFile(outputPath, audioPlaceholderPNG, 0o644); err != nil {
		return fmt.Errorf("write audio placeholder: %w", err)
	}
	return nil
}

func (c *CLI) run(ctx context.Context, operation string, args []string) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		return services.Wrap(services.ErrExternalTool, "ffmpeg", operation, detail, err)
	}
	return nil
}

// seekPoint picks the frame-grab offset: clips shorter than a second are
// grabbed at the start, short clips at two seconds in, everything else at
// five.
func seekPoint(duration time.Duration) string {
	switch {
	case duration < time.Second:
		return "0"
	case duration < 6*time.Second:
		return "2.0"
	default:
		return "5.0"
	}
}

var _ Engine = (*CLI)(nil)
