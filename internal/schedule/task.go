package schedule

import (
	"context"
	"sync"
	"time"
)

// Task runs a job once on start and then on every tick until stopped.
type Task struct {
	Name     string
	Interval time.Duration
	// Overlap runs every tick in its own goroutine, so a slow run never
	// delays or cancels the next one.
	Overlap bool

	job func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running sync.WaitGroup
}

func NewTask(name string, interval time.Duration, job func(ctx context.Context)) *Task {
	return &Task{Name: name, Interval: interval, job: job}
}

// Start launches the loop. Calling Start on a started task is a no-op.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		t.tick(ctx)
		ticker := time.NewTicker(t.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.tick(ctx)
			}
		}
	}()
}

// Step runs the job once on the caller's goroutine.
func (t *Task) Step(ctx context.Context) {
	t.job(ctx)
}

// Stop ends the loop and waits for in-flight runs to finish.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	t.running.Wait()
}

func (t *Task) tick(ctx context.Context) {
	if !t.Overlap {
		t.job(ctx)
		return
	}
	t.running.Add(1)
	go func() {
		defer t.running.Done()
		// in-flight runs keep going after Stop; only new ticks are prevented
		t.job(context.WithoutCancel(ctx))
	}()
}

// Group starts and stops several tasks together.
type Group []*Task

func (g Group) Start(ctx context.Context) {
	for _, t := range g {
		t.Start(ctx)
	}
}

func (g Group) Stop() {
	for _, t := range g {
		t.Stop()
	}
}
