package assemble

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"regroup/internal/report"
)

// Scheduler fans the planned tasks out across a bounded worker pool. Tasks
// never communicate with each other; the only shared state is the result
// channel. A failing task yields an error note and leaves its siblings
// running (bulkhead isolation).
type Scheduler struct {
	workers int
	logger  *slog.Logger
}

// NewScheduler builds a scheduler with the given worker count; zero or
// negative means one worker per CPU.
func NewScheduler(workers int, logger *slog.Logger) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{workers: workers, logger: logger.With("component", "schedule")}
}

type outcome struct {
	attachment report.Attachment
	err        error
}

// Run executes every task and returns the completed attachments alongside
// the per-task failures. Completion order is nondeterministic; callers
// relying on ordering sort by attachment name.
func (s *Scheduler) Run(ctx context.Context, assembler *Assembler, tasks []Task) ([]report.Attachment, []error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	workers := s.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	s.logger.Info("dispatching assembly", "tasks", len(tasks), "workers", workers)

	queue := make(chan Task)
	results := make(chan outcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				attachment, err := assembler.Assemble(ctx, task)
				results <- outcome{attachment: attachment, err: err}
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()
	close(results)

	var attachments []report.Attachment
	var failures []error
	for res := range results {
		if res.err != nil {
			s.logger.Error("group assembly failed", "error", res.err)
			failures = append(failures, res.err)
			continue
		}
		attachments = append(attachments, res.attachment)
	}
	return attachments, failures
}
