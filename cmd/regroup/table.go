package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"regroup/internal/report"
)

// printSummary writes the run outcome to stderr. Interactive sessions get a
// per-attachment table; everything else gets one structured log line so
// piped output stays greppable.
func printSummary(w io.Writer, logger *slog.Logger, summary report.Summary, attachments []report.Attachment) {
	if !isTerminal(w) {
		logger.Info("run complete",
			"component", "run",
			"inputs", summary.Inputs,
			"probe_failures", summary.ProbeFailures,
			"groups", summary.Groups,
			"attachments", summary.Attachments,
			"assembly_failures", summary.AssemblyFailures,
			"complete", summary.Complete(),
		)
		return
	}
	if len(attachments) > 0 {
		fmt.Fprintln(w, renderAttachmentsTable(attachments))
	}
	fmt.Fprintf(w, "%d inputs, %d groups, %d attachments", summary.Inputs, summary.Groups, summary.Attachments)
	if summary.ProbeFailures > 0 {
		fmt.Fprintf(w, ", %d probe failures", summary.ProbeFailures)
	}
	if summary.AssemblyFailures > 0 {
		fmt.Fprintf(w, ", %d assembly failures", summary.AssemblyFailures)
	}
	fmt.Fprintln(w)
}

func renderAttachmentsTable(attachments []report.Attachment) string {
	ordered := append([]report.Attachment(nil), attachments...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Kind", "Duration", "Size", "Sources"})
	for _, att := range ordered {
		tw.AppendRow(table.Row{att.Name, att.Kind, att.Duration, att.SizePretty, strconv.Itoa(len(att.Sources))})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
