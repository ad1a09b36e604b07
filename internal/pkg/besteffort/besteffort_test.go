package besteffort

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetached_RunsDetachedFromCaller(t *testing.T) {
	d := NewDetached(time.Second, zap.NewNop())

	var ran atomic.Bool
	var hadDeadline atomic.Bool
	d.Go("probe", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		ran.Store(true)
		return nil
	})
	d.Wait()

	assert.True(t, ran.Load())
	assert.True(t, hadDeadline.Load())
}

func TestInline_LogsAndSwallowsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	Inline{Log: zap.New(core)}.Go("increment", func(context.Context) error {
		return errors.New("db down")
	})

	entries := logs.FilterMessage("best-effort task failed").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "increment", entries[0].ContextMap()["task"])
}

func TestInline_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	assert.NotPanics(t, func() {
		Inline{Log: zap.New(core)}.Go("explode", func(context.Context) error {
			panic("kaboom")
		})
	})
	assert.Equal(t, 1, logs.FilterMessage("best-effort task panicked").Len())
}
