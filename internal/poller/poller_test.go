package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	m         sync.Mutex
	snapshots [][]int
}

func (r *recorder) apply(items []int) {
	r.m.Lock()
	defer r.m.Unlock()
	r.snapshots = append(r.snapshots, items)
}

func (r *recorder) count() int {
	r.m.Lock()
	defer r.m.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() []int {
	r.m.Lock()
	defer r.m.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func TestRun_PollsImmediatelyThenOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var m sync.Mutex
	calls := 0
	fetch := func(ctx context.Context) ([]int, error) {
		m.Lock()
		defer m.Unlock()
		calls++
		return []int{calls}, nil
	}

	rec := &recorder{}
	p := New("orders", 10*time.Millisecond, fetch, rec.apply, zap.NewNop())
	go p.Run(ctx)

	require.Eventually(t, func() bool {
		return rec.count() >= 3
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	// Last write wins: snapshots arrive in fetch order.
	rec.m.Lock()
	defer rec.m.Unlock()
	for i, snap := range rec.snapshots {
		assert.Equal(t, []int{i + 1}, snap)
	}
}

func TestRun_FailedPollRetainsPreviousSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var m sync.Mutex
	calls := 0
	fetch := func(ctx context.Context) ([]int, error) {
		m.Lock()
		defer m.Unlock()
		calls++
		if calls > 1 {
			return nil, errors.New("backend unavailable")
		}
		return []int{42}, nil
	}

	rec := &recorder{}
	p := New("orders", 10*time.Millisecond, fetch, rec.apply, zap.NewNop())
	go p.Run(ctx)

	require.Eventually(t, func() bool {
		m.Lock()
		defer m.Unlock()
		return calls >= 3
	}, 2*time.Second, 5*time.Millisecond)

	// Only the single successful poll produced a snapshot.
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, []int{42}, rec.last())
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(ctx context.Context) ([]int, error) {
		return []int{1}, nil
	}
	rec := &recorder{}
	p := New("orders", 5*time.Millisecond, fetch, rec.apply, zap.NewNop())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.count() >= 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}

	// No further snapshots arrive once Run has returned.
	settled := rec.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, rec.count())
}

func TestRun_ResultAfterCancelIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	fetch := func(ctx context.Context) ([]int, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		// Simulate an in-flight request outliving the view.
		time.Sleep(20 * time.Millisecond)
		return []int{99}, nil
	}

	rec := &recorder{}
	p := New("orders", time.Hour, fetch, rec.apply, zap.NewNop())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	<-started
	cancel()
	<-done

	assert.Equal(t, 0, rec.count())
}
