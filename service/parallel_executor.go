package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/jsparse"
)

// DefaultMaxConcurrency bounds the number of files parsed at once when
// the caller doesn't override it; NewParallelParser uses
// runtime.GOMAXPROCS(0) instead, this is only the floor for degenerate
// GOMAXPROCS values.
const DefaultMaxConcurrency = 4

// TaskError represents a single file's parse failure.
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface.
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error.
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects every file's parse failure from a batch.
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface.
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d files failed to parse:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelParser parses a project's source files concurrently,
// bounded by a worker limit, reporting progress and collecting
// per-file failures instead of aborting the whole batch on one.
type ParallelParser struct {
	maxConcurrency int
	mu             sync.RWMutex
}

// NewParallelParser creates a parser bounded by GOMAXPROCS.
func NewParallelParser() *ParallelParser {
	max := runtime.GOMAXPROCS(0)
	if max <= 0 {
		max = DefaultMaxConcurrency
	}
	return &ParallelParser{maxConcurrency: max}
}

// SetMaxConcurrency overrides the worker limit.
func (p *ParallelParser) SetMaxConcurrency(max int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if max > 0 {
		p.maxConcurrency = max
	}
}

// ParseFiles parses every file in the set concurrently. A per-file
// parse failure is collected as a warning rather than aborting the
// batch; ctx cancellation aborts the whole batch and returns ctx.Err().
func (p *ParallelParser) ParseFiles(ctx context.Context, files map[string]struct{}, progress domain.TaskProgress) (map[string]*domain.ModuleInfo, []string, error) {
	if progress == nil {
		progress = &NoOpTaskProgress{}
	}

	p.mu.RLock()
	limit := p.maxConcurrency
	p.mu.RUnlock()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	modules := make(map[string]*domain.ModuleInfo, len(files))
	var warnings []string

	for file := range files {
		file := file
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			info, err := jsparse.ParseModule(file)
			progress.Increment(1)
			if err != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("failed to parse %s: %v", file, err))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			modules[file] = info
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return modules, warnings, nil
}
