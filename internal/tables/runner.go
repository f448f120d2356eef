package tables

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

type Job struct {
	Entry Entry
	// Path is where the markdown goes; empty skips writing.
	Path string
}

type Result struct {
	Job      Job
	Table    render.Table
	Duration time.Duration
	Error    error
}

// Runner builds tables on a fixed pool of workers over one shared, read-only
// set of records.
type Runner struct {
	recs      []survey.Record
	appLogger *logger.Logger

	maxConcurrency int
}

func NewRunner(recs []survey.Record, appLogger *logger.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		recs:           recs,
		appLogger:      appLogger,
		maxConcurrency: concurrency,
	}
}

// OutputPath is the conventional file for table n under dir.
func OutputPath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("table%d.md", n))
}

// Run builds every entry and writes it under outDir when outDir is set.
// Results come back in entry order. A cancelled ctx stops tables that have
// not started; their results carry the context error.
func (r *Runner) Run(ctx context.Context, entries []Entry, outDir string) ([]Result, error) {
	const component = "Runner"
	r.appLogger.Info(component, "Starting runner: tables=%d concurrency=%d outDir=%s", len(entries), r.maxConcurrency, outDir)

	jobChan := make(chan Job, len(entries))
	resultChan := make(chan Result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < r.maxConcurrency; i++ {
		wg.Add(1)
		go r.worker(ctx, jobChan, resultChan, &wg)
	}

	for _, e := range entries {
		job := Job{Entry: e}
		if outDir != "" {
			job.Path = OutputPath(outDir, e.Number)
		}
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()
	close(resultChan)

	byNumber := make(map[int]Result, len(entries))
	for res := range resultChan {
		byNumber[res.Job.Entry.Number] = res
	}

	results := make([]Result, 0, len(entries))
	var errs []error
	for _, e := range entries {
		res := byNumber[e.Number]
		results = append(results, res)
		if res.Error != nil {
			errs = append(errs, res.Error)
		}
	}
	r.appLogger.Info(component, "Runner finished: tables=%d failed=%d", len(results), len(errs))
	return results, errors.Join(errs...)
}

func (r *Runner) worker(ctx context.Context, jobs <-chan Job, results chan<- Result, wg *sync.WaitGroup) {
	const component = "Worker"
	defer wg.Done()

	for job := range jobs {
		if err := ctx.Err(); err != nil {
			r.appLogger.Warn(component, "Table skipped: table=%d reason=%v", job.Entry.Number, err)
			results <- Result{Job: job, Error: fmt.Errorf("table %d not built: %w", job.Entry.Number, err)}
			continue
		}
		r.appLogger.Debug(component, "Processing job: table=%d", job.Entry.Number)
		results <- r.process(job)
	}
}

func (r *Runner) process(job Job) Result {
	const component = "Processor"
	start := time.Now()
	res := Result{Job: job}

	tbl, err := job.Entry.Build(r.recs, r.appLogger)
	if err != nil {
		res.Error = fmt.Errorf("build table %d: %w", job.Entry.Number, err)
		r.appLogger.Error(component, "Table failed: table=%d error=%v", job.Entry.Number, err)
		return res
	}
	res.Table = tbl

	if job.Path != "" {
		if err := WriteFile(job.Path, tbl); err != nil {
			res.Error = fmt.Errorf("write table %d: %w", job.Entry.Number, err)
			r.appLogger.Error(component, "Table not written: table=%d path=%s error=%v", job.Entry.Number, job.Path, err)
			return res
		}
	}

	res.Duration = time.Since(start)
	r.appLogger.Info(component, "Table ready: table=%d path=%s duration=%s", job.Entry.Number, job.Path, res.Duration)
	return res
}

// WriteFile renders tbl as markdown into path, creating the parent directory.
func WriteFile(path string, tbl render.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Markdown(f, tbl); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
