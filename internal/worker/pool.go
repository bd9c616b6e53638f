// Package worker converts batches of color inputs in parallel.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
)

// Processor converts a single task.
type Processor interface {
	Process(ctx context.Context, task Task) (colormodel.Color, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, task Task) (colormodel.Color, error)

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, task Task) (colormodel.Color, error) {
	return f(ctx, task)
}

// TextProcessor converts each task's raw text, falling back to Prev for
// components that are not numbers.
type TextProcessor struct {
	Prev colormodel.Color
}

// Process implements Processor.
func (p TextProcessor) Process(ctx context.Context, task Task) (colormodel.Color, error) {
	if err := ctx.Err(); err != nil {
		return colormodel.Color{}, err
	}
	return converter.ConvertText(task.Kind, task.Raw, p.Prev)
}

// Task is one input line to convert.
type Task struct {
	Line int
	Kind converter.Kind
	Raw  string
}

// Result is the outcome of a task.
type Result struct {
	Task    Task
	Color   colormodel.Color
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Processor  Processor
	OnProgress ProgressFunc
}

// Pool runs tasks on a fixed number of goroutines.
type Pool struct {
	workers    int
	processor  Processor
	onProgress ProgressFunc
}

type indexedTask struct {
	index int
	task  Task
}

type indexedResult struct {
	index  int
	result Result
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	processor := cfg.Processor
	if processor == nil {
		processor = TextProcessor{Prev: colormodel.Default()}
	}

	return &Pool{
		workers:    workers,
		processor:  processor,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns one result per task, in task order.
// Tasks that are not started before ctx is cancelled report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan indexedTask, len(tasks))
	resultCh := make(chan indexedResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	for i, task := range tasks {
		taskCh <- indexedTask{index: i, task: task}
	}
	close(taskCh)

	results := make([]Result, len(tasks))
	done := make(chan struct{})

	go func() {
		completed, failed := 0, 0
		for r := range resultCh {
			results[r.index] = r.result
			completed++
			if r.result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tasks), failed)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan indexedTask, results chan<- indexedResult) {
	for it := range tasks {
		select {
		case <-ctx.Done():
			results <- indexedResult{index: it.index, result: Result{Task: it.task, Err: ctx.Err()}}
			continue
		default:
		}

		start := time.Now()
		c, err := p.processor.Process(ctx, it.task)
		results <- indexedResult{
			index: it.index,
			result: Result{
				Task:    it.task,
				Color:   c,
				Err:     err,
				Elapsed: time.Since(start),
			},
		}
	}
}
