// Package worker runs best-effort side effects in the background. A task
// failure is logged and sent to the runner's error channel; it never
// reaches the caller that scheduled the task.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type TaskError struct {
	Task string
	Err  error
}

func (e TaskError) Error() string { return fmt.Sprintf("%s: %v", e.Task, e.Err) }

func (e TaskError) Unwrap() error { return e.Err }

type Runner struct {
	log     zerolog.Logger
	timeout time.Duration
	errs    chan TaskError
	wg      sync.WaitGroup
}

// New returns a runner whose tasks each get timeout to finish. Up to
// buffer failures are kept on Errors for inspection; older ones are only
// logged once the buffer is full.
func New(log zerolog.Logger, timeout time.Duration, buffer int) *Runner {
	return &Runner{
		log:     log.With().Str("component", "worker").Logger(),
		timeout: timeout,
		errs:    make(chan TaskError, buffer),
	}
}

func (r *Runner) Errors() <-chan TaskError { return r.errs }

// Go runs fn on its own goroutine with a context detached from the
// scheduling request.
func (r *Runner) Go(task string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := runSafe(ctx, fn)
		if err == nil {
			return
		}
		r.log.Warn().Err(err).Str("task", task).Msg("background task failed")
		select {
		case r.errs <- TaskError{Task: task, Err: err}:
		default:
		}
	}()
}

// Wait blocks until every scheduled task has returned.
func (r *Runner) Wait() { r.wg.Wait() }

func runSafe(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}
