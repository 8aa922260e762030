package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"carwash-tracker/internal/domain/entity"
	"carwash-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// Prune drops cancelled bookings and bookings whose finish time is more
// than retention in the past. It reports whether anything was removed,
// so callers can skip redundant saves. Pruning twice with the same now
// removes nothing further.
func Prune(bookings []entity.Booking, now time.Time, retention time.Duration) ([]entity.Booking, bool) {
	kept := bookings[:0]
	for _, b := range bookings {
		if b.IsCancelled() || b.ExpiredAt(now, retention) {
			continue
		}
		kept = append(kept, b)
	}
	return kept, len(kept) != len(bookings)
}

// PrunerJob runs retention pruning on a fixed interval so stale
// bookings disappear even when nobody is reading. Each pass goes
// through the shared Collection, taking the same critical section as
// request-driven mutations.
type PrunerJob struct {
	collection *repository.Collection
	log        *logrus.Logger
	interval   time.Duration
	retention  time.Duration
	now        func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewPrunerJob(collection *repository.Collection, log *logrus.Logger, interval, retention time.Duration) *PrunerJob {
	return &PrunerJob{
		collection: collection,
		log:        log,
		interval:   interval,
		retention:  retention,
		now:        time.Now,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the background pruning loop.
func (j *PrunerJob) Start() {
	j.wg.Add(1)
	go j.run()
	j.log.Infof("Pruner job started: interval=%v, retention=%v", j.interval, j.retention)
}

// Stop shuts the loop down and waits for an in-flight pass to finish.
// Safe to call multiple times.
func (j *PrunerJob) Stop() {
	if j.stopped.CompareAndSwap(false, true) {
		close(j.stopChan)
		j.wg.Wait()
		j.log.Info("Pruner job stopped")
	}
}

func (j *PrunerJob) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ticker.C:
			j.RunOnce(context.Background())
		}
	}
}

// RunOnce performs a single prune pass. Exposed so tests and startup
// can trigger a pass without waiting on the ticker.
func (j *PrunerJob) RunOnce(ctx context.Context) {
	now := j.now()
	var removed int

	_, err := j.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		before := len(bookings)
		pruned, changed := Prune(bookings, now, j.retention)
		removed = before - len(pruned)
		return pruned, changed, nil
	})
	if err != nil {
		j.log.Warnf("Prune pass failed: %+v", err)
		return
	}

	if removed > 0 {
		j.log.Infof("Pruned %d stale bookings", removed)
	}
}
