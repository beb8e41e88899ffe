package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"regroup/internal/assemble"
	"regroup/internal/config"
	"regroup/internal/correlate"
	"regroup/internal/logging"
	"regroup/internal/media"
	"regroup/internal/media/ffprobe"
	"regroup/internal/preflight"
	"regroup/internal/report"
	"regroup/internal/services"
	"regroup/internal/services/ffmpeg"
)

type runOptions struct {
	outDir     string
	configPath string
	workers    int
}

// run drives the whole pipeline: probe, correlate, plan, assemble, report.
// The JSON report goes to stdout; everything diagnostic goes to stderr.
func run(cmd *cobra.Command, args []string, opts *runOptions) error {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "load", "", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = "."
	}
	outDir, err = config.ExpandPath(outDir)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "run", "resolve output directory", "", err)
	}
	// The output directory must pre-exist; preflight rejects a missing or
	// unusable one instead of creating it.
	if err := preflight.Ensure(cfg, outDir); err != nil {
		return err
	}

	// One writer per output directory; concurrent runs would race on the
	// shared output indices.
	lock := flock.New(filepath.Join(outDir, ".regroup.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "run", "acquire output lock", "", err)
	}
	if !locked {
		return services.Wrap(services.ErrConfiguration, "run", "acquire output lock",
			fmt.Sprintf("another regroup run is writing to %s", outDir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", "component", "run", "error", err)
		}
	}()

	ctx := cmd.Context()
	probeLog := logger.With("component", "probe")

	var descriptors []media.Descriptor
	var probeFailures []error
	for _, arg := range args {
		path, err := config.ExpandPath(arg)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "run", "resolve input path", arg, err)
		}
		extracted, err := ffprobe.Extract(ctx, cfg.FFprobeBinary(), path)
		if err != nil {
			wrapped := services.Wrap(services.ErrProbe, "probe", "inspect", path, err)
			probeFailures = append(probeFailures, wrapped)
			probeLog.Warn("skipping unreadable input", "path", path, "error", err)
			continue
		}
		descriptors = append(descriptors, extracted...)
	}
	probeLog.Info("inspected inputs", "files", len(args), "streams", len(descriptors), "failures", len(probeFailures))

	groups := correlate.Partition(descriptors, correlate.Options{
		DurationTolerance:  cfg.DurationTolerance(),
		TimestampTolerance: cfg.TimestampTolerance(),
	})
	logger.Info("partitioned inputs", "component", "correlate", "groups", len(groups))

	tasks := assemble.Plan(groups, assemble.PlanOptions{SyncTolerance: cfg.SyncTolerance()})

	workers := cfg.Assembly.Workers
	if cmd.Flags().Changed("workers") {
		workers = opts.workers
	}

	engine := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
	assembler := assemble.NewAssembler(engine, outDir, cfg.Assembly.OutputBaseName, logger)
	scheduler := assemble.NewScheduler(workers, logger)

	attachments, assemblyFailures := scheduler.Run(ctx, assembler, tasks)

	if err := report.Export(cmd.OutOrStdout(), attachments); err != nil {
		return services.Wrap(services.ErrAssembly, "report", "export", "", err)
	}

	summary := report.Summary{
		Inputs:           len(args),
		ProbeFailures:    len(probeFailures),
		Groups:           len(groups),
		Attachments:      len(attachments),
		AssemblyFailures: len(assemblyFailures),
	}
	printSummary(cmd.ErrOrStderr(), logger, summary, attachments)

	switch {
	case len(assemblyFailures) > 0:
		return services.Wrap(services.ErrAssembly, "run", "assemble",
			fmt.Sprintf("%d of %d groups failed", len(assemblyFailures), len(tasks)), nil)
	case len(probeFailures) > 0:
		return services.Wrap(services.ErrProbe, "run", "probe",
			fmt.Sprintf("%d of %d inputs unreadable", len(probeFailures), len(args)), nil)
	default:
		return nil
	}
}
