package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/omnicorp/fieldops-api/internal/api/metrics"
	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	err    error
	done   chan struct{}
}

func newRecordingAuditRepo(expected int) *recordingAuditRepo {
	return &recordingAuditRepo{done: make(chan struct{}, expected)}
}

func (r *recordingAuditRepo) InsertEvent(_ context.Context, event *domain.OrderEvent) error {
	r.mu.Lock()
	r.events = append(r.events, *event)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *recordingAuditRepo) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversEventToAudit(t *testing.T) {
	repo := newRecordingAuditRepo(1)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.OrderEvent{OrderID: "OS-2026-1111", Status: domain.StatusPending, Actor: "system"})
	repo.wait(t, 1)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.events[0].OrderID != "OS-2026-1111" || repo.events[0].Actor != "system" {
		t.Errorf("unexpected event: %+v", repo.events[0])
	}
}

func TestDispatcher_SameOrderKeepsOrdering(t *testing.T) {
	repo := newRecordingAuditRepo(3)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	statuses := []domain.OrderStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted}
	for _, s := range statuses {
		d.Enqueue(domain.OrderEvent{OrderID: "OS-2026-2222", Status: s, Actor: "usr_001"})
	}
	repo.wait(t, 3)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, s := range statuses {
		if repo.events[i].Status != s {
			t.Fatalf("event %d out of order: got %s, want %s", i, repo.events[i].Status, s)
		}
	}
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingAuditRepo(0), zerolog.Nop())

	first := d.shardIndex("OS-2026-3333")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("OS-2026-3333"); got != first {
			t.Fatalf("shard index must be stable, got %d then %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingAuditRepo(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

// Only workers write the queue depth gauge; a producer updating it after a
// send would race with the worker's own update and report stale depths.
func TestDispatcher_QueueDepthGaugeOwnedByWorkers(t *testing.T) {
	metrics.AuditQueueDepth.Reset()
	repo := newRecordingAuditRepo(3)
	d := NewDispatcher(1, repo, zerolog.Nop())

	statuses := []domain.OrderStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted}
	for _, s := range statuses {
		d.Enqueue(domain.OrderEvent{OrderID: "OS-2026-5555", Status: s, Actor: "system"})
	}

	// No worker has started yet, so nothing may have touched the gauge.
	if got := testutil.ToFloat64(metrics.AuditQueueDepth.WithLabelValues("0")); got != 0 {
		t.Fatalf("gauge written from the producer side: %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	repo.wait(t, 3)

	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(metrics.AuditQueueDepth.WithLabelValues("0")) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("gauge did not settle at 0 after the queue drained")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_AuditFailureDoesNotStopWorker(t *testing.T) {
	repo := newRecordingAuditRepo(2)
	repo.err = errors.New("insert failed")
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.OrderEvent{OrderID: "OS-2026-4444", Status: domain.StatusPending})
	d.Enqueue(domain.OrderEvent{OrderID: "OS-2026-4444", Status: domain.StatusInProgress})
	repo.wait(t, 2)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.events) != 2 {
		t.Fatalf("worker must keep draining after a failed insert, got %d events", len(repo.events))
	}
}
