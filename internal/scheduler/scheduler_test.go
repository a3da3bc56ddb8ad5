package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/repository"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeTransitions records handler invocations and optionally fails.
type fakeTransitions struct {
	started []string
	ended   []string
	fail    error
}

func (f *fakeTransitions) StartScheduled(auctionID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.started = append(f.started, auctionID)
	return nil
}

func (f *fakeTransitions) EndScheduled(auctionID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.ended = append(f.ended, auctionID)
	return nil
}

// fakeSweeper counts sweeps and optionally fails.
type fakeSweeper struct {
	sweeps int
	fail   error
}

func (f *fakeSweeper) SweepOverdueShipments(ctx context.Context) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.sweeps++
	return 0, nil
}

func enqueue(t *testing.T, store repository.TaskStore, taskID string, kind models.TaskKind, subjectID string, runAt time.Time) {
	t.Helper()
	require.NoError(t, store.EnqueueTask(models.ScheduledTask{
		TaskID:    taskID,
		Kind:      kind,
		SubjectID: subjectID,
		RunAt:     runAt,
		CreatedAt: runAt,
		UpdatedAt: runAt,
	}))
}

// Test that due tasks are dispatched and finished exactly once
func TestScheduler_Tick(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)
	transitions := &fakeTransitions{}
	sched := New(store, transitions, &fakeSweeper{}, clk, time.Second)

	enqueue(t, store, "t-start", models.TaskStartAuction, "auction1", baseTime.Add(-time.Minute))
	enqueue(t, store, "t-end", models.TaskEndAuction, "auction1", baseTime.Add(time.Hour))

	sched.Tick(context.Background())
	require.Equal(t, []string{"auction1"}, transitions.started)
	require.Empty(t, transitions.ended)

	// A completed task is not redelivered.
	sched.Tick(context.Background())
	require.Len(t, transitions.started, 1)

	// The end task fires once its time arrives.
	clk.Advance(2 * time.Hour)
	sched.Tick(context.Background())
	require.Equal(t, []string{"auction1"}, transitions.ended)
}

// Test that a failing handler leaves its task queued for retry
func TestScheduler_FailedHandlerRetried(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)
	transitions := &fakeTransitions{fail: fmt.Errorf("store unavailable")}
	sched := New(store, transitions, &fakeSweeper{}, clk, time.Second)

	enqueue(t, store, "t-start", models.TaskStartAuction, "auction1", baseTime.Add(-time.Minute))

	sched.Tick(context.Background())
	require.Empty(t, transitions.started)

	// Once the handler recovers, the retained task goes through.
	transitions.fail = nil
	sched.Tick(context.Background())
	require.Equal(t, []string{"auction1"}, transitions.started)
}

// Test the recurring sweep task
func TestScheduler_RecurringSweep(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)
	sweeper := &fakeSweeper{}
	sched := New(store, &fakeTransitions{}, sweeper, clk, time.Second)

	require.NoError(t, sched.EnsureSweepTask())
	// Idempotent: a restart calling it again changes nothing.
	require.NoError(t, sched.EnsureSweepTask())

	sched.Tick(context.Background())
	require.Equal(t, 1, sweeper.sweeps)

	// The sweep rescheduled itself: not due again until a day has passed.
	sched.Tick(context.Background())
	require.Equal(t, 1, sweeper.sweeps)

	clk.Advance(24*time.Hour + time.Minute)
	sched.Tick(context.Background())
	require.Equal(t, 2, sweeper.sweeps)
}

// Test that a failed sweep keeps its original due time
func TestScheduler_FailedSweepRetried(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)
	sweeper := &fakeSweeper{fail: fmt.Errorf("processor unavailable")}
	sched := New(store, &fakeTransitions{}, sweeper, clk, time.Second)

	require.NoError(t, sched.EnsureSweepTask())
	sched.Tick(context.Background())
	require.Zero(t, sweeper.sweeps)

	sweeper.fail = nil
	sched.Tick(context.Background())
	require.Equal(t, 1, sweeper.sweeps)
}

// Tasks live in the store, not in process memory: a scheduler built fresh
// over the same store picks up everything still queued.
func TestScheduler_RestartSafety(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)

	enqueue(t, store, "t-end", models.TaskEndAuction, "auction1", baseTime.Add(-time.Minute))

	// First process dies before its tick.
	_ = New(store, &fakeTransitions{}, &fakeSweeper{}, clk, time.Second)

	// The replacement dispatches the overdue task on its first pass.
	transitions := &fakeTransitions{}
	replacement := New(store, transitions, &fakeSweeper{}, clk, time.Second)
	replacement.Tick(context.Background())
	require.Equal(t, []string{"auction1"}, transitions.ended)
}

// Test Run: the first pass is immediate and cancellation stops the loop
func TestScheduler_Run(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	clk := clock.NewFixed(baseTime)
	transitions := &fakeTransitions{}
	sched := New(store, transitions, &fakeSweeper{}, clk, time.Hour)

	enqueue(t, store, "t-start", models.TaskStartAuction, "auction1", baseTime.Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		tasks, err := store.DueTasks(clk.Now())
		return err == nil && len(tasks) == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
