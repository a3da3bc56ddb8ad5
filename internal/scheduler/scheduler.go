package scheduler

import (
	"context"
	"errors"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// sweepTaskID is fixed so the recurring sweep is enqueued at most once even
// across restarts.
const sweepTaskID = "sweep-overdue-shipments"

// AuctionTransitions are the time-triggered auction state changes. Handlers
// are idempotent: they condition on the current status, so duplicate task
// delivery is a no-op.
type AuctionTransitions interface {
	StartScheduled(auctionID string) error
	EndScheduled(auctionID string) error
}

// OverdueSweeper refunds paid-but-unshipped payments past the grace period.
type OverdueSweeper interface {
	SweepOverdueShipments(ctx context.Context) (int, error)
}

// Scheduler polls the durable task queue and dispatches due tasks. Tasks are
// marked done only after their handler succeeds, so delivery is
// at-least-once and survives restarts.
type Scheduler struct {
	store      repository.TaskStore
	auctions   AuctionTransitions
	payments   OverdueSweeper
	clock      clock.Clock
	interval   time.Duration
	sweepEvery time.Duration
}

// New creates a Scheduler polling at the given interval.
func New(store repository.TaskStore, auctions AuctionTransitions, payments OverdueSweeper, clk clock.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		store:      store,
		auctions:   auctions,
		payments:   payments,
		clock:      clk,
		interval:   interval,
		sweepEvery: 24 * time.Hour,
	}
}

// EnsureSweepTask enqueues the recurring overdue-shipment sweep if it is not
// already queued.
func (s *Scheduler) EnsureSweepTask() error {
	now := s.clock.Now()
	err := s.store.EnqueueTask(models.ScheduledTask{
		TaskID:    sweepTaskID,
		Kind:      models.TaskSweepOverdue,
		RunAt:     now,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil && !errors.Is(err, auctionerrors.ErrAlreadyExists) {
		return err
	}
	return nil
}

// Run polls until the context is cancelled. The first pass happens
// immediately so overdue tasks are caught up right after a restart.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick processes every task that is due now. Failed handlers leave their
// task queued, so it is retried on the next pass.
func (s *Scheduler) Tick(ctx context.Context) {
	due, err := s.store.DueTasks(s.clock.Now())
	if err != nil {
		utils.Error("scheduler: fetching due tasks failed", map[string]any{"error": err.Error()})
		return
	}

	for _, task := range due {
		s.dispatch(ctx, task)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, task models.ScheduledTask) {
	var err error
	switch task.Kind {
	case models.TaskStartAuction:
		err = s.auctions.StartScheduled(task.SubjectID)
	case models.TaskEndAuction:
		err = s.auctions.EndScheduled(task.SubjectID)
	case models.TaskSweepOverdue:
		_, err = s.payments.SweepOverdueShipments(ctx)
		if err == nil {
			// Recurring: push the same task forward instead of finishing it.
			if err := s.store.RescheduleTask(task.TaskID, s.clock.Now().Add(s.sweepEvery)); err != nil {
				utils.Error("scheduler: rescheduling sweep failed", map[string]any{"task_id": task.TaskID, "error": err.Error()})
			}
			return
		}
	default:
		utils.Error("scheduler: unknown task kind", map[string]any{"task_id": task.TaskID, "kind": string(task.Kind)})
		return
	}

	if err != nil {
		utils.Error("scheduler: task handler failed, will retry", map[string]any{
			"task_id": task.TaskID,
			"kind":    string(task.Kind),
			"subject": task.SubjectID,
			"error":   err.Error(),
		})
		return
	}
	if err := s.store.MarkTaskDone(task.TaskID); err != nil {
		utils.Error("scheduler: marking task done failed", map[string]any{"task_id": task.TaskID, "error": err.Error()})
	}
}
