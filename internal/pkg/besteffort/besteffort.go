// Package besteffort runs advisory side effects whose failure must never reach
// the caller of the primary operation. Errors and panics are logged and dropped.
package besteffort

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

type Runner interface {
	Go(name string, task Task)
}

// Detached runs each task on its own goroutine with a context that is not tied
// to the originating request, bounded by Timeout.
type Detached struct {
	Timeout time.Duration
	Log     *zap.Logger

	wg sync.WaitGroup
}

func NewDetached(timeout time.Duration, log *zap.Logger) *Detached {
	return &Detached{Timeout: timeout, Log: log}
}

func (d *Detached) Go(name string, task Task) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
		defer cancel()

		run(ctx, d.Log, name, task)
	}()
}

// Wait blocks until every started task has finished. Used on shutdown.
func (d *Detached) Wait() {
	d.wg.Wait()
}

// Inline runs the task synchronously on the caller's goroutine with a fresh
// context, still swallowing its failure.
type Inline struct {
	Log *zap.Logger
}

func (i Inline) Go(name string, task Task) {
	run(context.Background(), i.Log, name, task)
}

func run(ctx context.Context, log *zap.Logger, name string, task Task) {
	if log == nil {
		log = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("best-effort task panicked", zap.String("task", name), zap.String("panic", fmt.Sprint(r)))
		}
	}()

	if err := task(ctx); err != nil {
		log.Warn("best-effort task failed", zap.String("task", name), zap.Error(err))
	}
}
