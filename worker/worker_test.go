package worker

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerCollectsFailures(t *testing.T) {
	r := New(zerolog.New(io.Discard), time.Second, 4)

	var ran atomic.Int32
	r.Go("ok", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	r.Go("boom", func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("store unavailable")
	})
	r.Go("panics", func(ctx context.Context) error {
		ran.Add(1)
		panic("oops")
	})
	r.Wait()

	assert.Equal(t, int32(3), ran.Load())
	require.Len(t, r.Errors(), 2)

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		te := <-r.Errors()
		got[te.Task] = true
	}
	assert.True(t, got["boom"])
	assert.True(t, got["panics"])
}

func TestRunnerTaskContextHasDeadline(t *testing.T) {
	r := New(zerolog.New(io.Discard), 50*time.Millisecond, 1)
	r.Go("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	r.Wait()

	te := <-r.Errors()
	assert.ErrorIs(t, te, context.DeadlineExceeded)
}

func TestRunnerDropsWhenBufferFull(t *testing.T) {
	r := New(zerolog.New(io.Discard), time.Second, 1)
	for i := 0; i < 3; i++ {
		r.Go("fail", func(ctx context.Context) error { return errors.New("x") })
	}
	r.Wait()
	assert.Len(t, r.Errors(), 1)
}
