package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/pkg/pipeline"
)

// Processor renders one file. *pipeline.Pipeline implements it.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*pipeline.FileResult, error)
}

// Runner renders files concurrently with a Processor.
type Runner struct {
	// Processor handles per-file rendering.
	Processor Processor
}

// New creates a new Runner with the given processor.
func New(processor Processor) *Runner {
	return &Runner{Processor: processor}
}

// Run renders opts.Files, or the files discovered under opts.Dir, on a
// worker pool. Outcomes are ordered by path regardless of completion order.
// The first file error cancels the remaining work and is returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files := opts.Files
	if files == nil {
		var err error
		files, err = Discover(ctx, opts)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, fail)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	logging.FromContext(ctx).Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldSkipped, result.Stats.FilesSkipped,
		logging.FieldDuration, result.Stats.Duration,
	)

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	fail func(error),
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := r.Processor.ProcessFile(ctx, path)
		if err != nil {
			fail(fmt.Errorf("process %s: %w", path, err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- FileOutcome{Path: path, Result: res}:
		}
	}
}
