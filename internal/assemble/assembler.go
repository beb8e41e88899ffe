package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"regroup/internal/media"
	"regroup/internal/report"
	"regroup/internal/selection"
	"regroup/internal/services"
	"regroup/internal/services/ffmpeg"
)

// Assembler turns one planned task into a finished attachment record by
// driving the external media engine. Failures are scoped to the task.
type Assembler struct {
	engine   ffmpeg.Engine
	outDir   string
	baseName string
	logger   *slog.Logger
}

// NewAssembler constructs an assembler writing into outDir. Output files
// are named "<baseName>_NNN.mp4" with a matching ".jpg" thumbnail.
func NewAssembler(engine ffmpeg.Engine, outDir, baseName string, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		engine:   engine,
		outDir:   outDir,
		baseName: baseName,
		logger:   logger.With("component", "assemble"),
	}
}

// Assemble produces the attachment for one task. Image-only groups pass
// through untouched; everything else is remuxed and thumbnailed.
func (a *Assembler) Assemble(ctx context.Context, task Task) (report.Attachment, error) {
	if task.Selection.Class == selection.ClassImage {
		return a.passthroughImage(task)
	}
	return a.remuxGroup(ctx, task)
}

func (a *Assembler) passthroughImage(task Task) (report.Attachment, error) {
	img := task.Selection.Image
	info, err := os.Stat(img.Path)
	if err != nil {
		return report.Attachment{}, services.Wrap(services.ErrAssembly, "assemble", "stat image", img.Path, err)
	}
	name := task.ImageName
	if name == "" {
		name = filepath.Base(img.Path)
	}
	a.logger.Info("passing through image", "source", img.Path)
	return report.Attachment{
		Name:       name,
		Path:       img.Path,
		Timestamp:  task.Group.Timestamp(),
		Size:       info.Size(),
		SizePretty: media.FormatSize(info.Size()),
		Kind:       task.Selection.Class.String(),
		Thumbnail:  nil,
		Duration:   media.FormatDuration(0),
		Sources:    task.Group.Sources(),
	}, nil
}

func (a *Assembler) remuxGroup(ctx context.Context, task Task) (report.Attachment, error) {
	sel := task.Selection
	name := fmt.Sprintf("%s_%03d.mp4", a.baseName, task.Index)
	outPath := filepath.Join(a.outDir, name)

	videoPath := ""
	if sel.Video != nil {
		videoPath = sel.Video.Path
	}
	audioPath := ""
	if sel.Audio != nil {
		audioPath = sel.Audio.Path
	}

	a.logger.Info("remuxing group",
		"output", name,
		"kind", sel.Class.String(),
		"sources", len(task.Group.Sources()))
	if err := a.engine.Remux(ctx, videoPath, audioPath, outPath); err != nil {
		return report.Attachment{}, services.Wrap(services.ErrAssembly, "assemble", "remux", name, err)
	}

	thumbName := fmt.Sprintf("%s_%03d.jpg", a.baseName, task.Index)
	thumbPath := filepath.Join(a.outDir, thumbName)
	if err := a.renderThumbnail(ctx, task, outPath, thumbPath); err != nil {
		return report.Attachment{}, services.Wrap(services.ErrAssembly, "assemble", "thumbnail", name, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return report.Attachment{}, services.Wrap(services.ErrAssembly, "assemble", "stat output", name, err)
	}

	return report.Attachment{
		Name:       name,
		Path:       outPath,
		Timestamp:  task.Group.Timestamp(),
		Size:       info.Size(),
		SizePretty: media.FormatSize(info.Size()),
		Kind:       sel.Class.String(),
		Thumbnail:  &thumbPath,
		Duration:   media.FormatDuration(referenceDuration(sel)),
		Sources:    task.Group.Sources(),
	}, nil
}

// renderThumbnail picks the preview strategy: frame grab for anything with
// a video track, the image surrogate when one exists, and the static
// placeholder for bare audio.
func (a *Assembler) renderThumbnail(ctx context.Context, task Task, outPath, thumbPath string) error {
	sel := task.Selection
	switch {
	case sel.Video != nil:
		return a.engine.Snapshot(ctx, outPath, sel.Video.Duration, thumbPath)
	case sel.Image != nil:
		return a.engine.Snapshot(ctx, sel.Image.Path, 0, thumbPath)
	default:
		return a.engine.AudioPlaceholder(thumbPath)
	}
}

func referenceDuration(sel selection.Selection) time.Duration {
	if sel.Video != nil {
		return sel.Video.Duration
	}
	if sel.Audio != nil {
		return sel.Audio.Duration
	}
	return 0
}
