package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	runs map[string][]bool
}

func (r *recorder) JobRun(job string, d time.Duration, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runs == nil {
		r.runs = map[string][]bool{}
	}
	r.runs[job] = append(r.runs[job], success)
}

func TestRunner_RunRecordsOutcome(t *testing.T) {
	rec := &recorder{}
	r := New(time.UTC, nil, rec)

	require.NoError(t, r.Run("ok", func(ctx context.Context) (int64, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return 3, nil
	}))
	err := r.Run("bad", func(context.Context) (int64, error) { return 0, errors.New("db down") })
	assert.EqualError(t, err, "db down")

	assert.Equal(t, []bool{true}, rec.runs["ok"])
	assert.Equal(t, []bool{false}, rec.runs["bad"])
}

func TestRunner_AddValidatesSpec(t *testing.T) {
	r := New(nil, nil, nil)
	noop := func(context.Context) (int64, error) { return 0, nil }

	require.NoError(t, r.Add("revenue", "5 0 * * *", noop))
	assert.Error(t, r.Add("broken", "every night", noop))
	assert.Equal(t, 1, r.Entries())
}

func TestRunner_StopCancelsRunningJobs(t *testing.T) {
	r := New(time.UTC, nil, nil)
	started := make(chan struct{})
	finished := make(chan error, 1)

	go func() {
		finished <- r.Run("slow", func(ctx context.Context) (int64, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r.Start()
	r.Stop(ctx)

	select {
	case err := <-finished:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("job was not cancelled")
	}
}
