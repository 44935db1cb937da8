package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStepRunsJobOnce(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("poll", time.Hour, func(ctx context.Context) { runs.Add(1) })
	task.Step(context.Background())
	task.Step(context.Background())
	if runs.Load() != 2 {
		t.Fatalf("expected 2 runs, got %d", runs.Load())
	}
}

func TestStartRunsImmediatelyThenOnInterval(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("clock", 10*time.Millisecond, func(ctx context.Context) { runs.Add(1) })
	task.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	task.Stop()
	if runs.Load() < 3 {
		t.Fatalf("expected at least 3 runs, got %d", runs.Load())
	}

	after := runs.Load()
	time.Sleep(40 * time.Millisecond)
	if runs.Load() != after {
		t.Fatalf("expected no runs after Stop, got %d more", runs.Load()-after)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	task := NewTask("countdown", time.Hour, func(ctx context.Context) {})
	task.Stop()
	task.Start(context.Background())
	task.Stop()
	task.Stop()
}

func TestOverlapDoesNotBlockNextTick(t *testing.T) {
	release := make(chan struct{})
	var started atomic.Int32
	task := NewTask("poll", 10*time.Millisecond, func(ctx context.Context) {
		started.Add(1)
		<-release
	})
	task.Overlap = true
	task.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for started.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if started.Load() < 2 {
		t.Fatalf("expected overlapping runs, got %d", started.Load())
	}
	close(release)
	task.Stop()
}

func TestGroupStopsAllTasks(t *testing.T) {
	var a, b atomic.Int32
	g := Group{
		NewTask("a", time.Hour, func(ctx context.Context) { a.Add(1) }),
		NewTask("b", time.Hour, func(ctx context.Context) { b.Add(1) }),
	}
	g.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for (a.Load() == 0 || b.Load() == 0) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	g.Stop()
	if a.Load() != 1 || b.Load() != 1 {
		t.Fatalf("expected one immediate run each, got %d and %d", a.Load(), b.Load())
	}
}
