package stats

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Observer is notified each time a snapshot is published.
type Observer interface {
	ObserveRecomputation(duration time.Duration)
}

// Recomputer recomputes statistics after a delay whenever the collection
// changes. A new trigger supersedes any computation still waiting, so only
// the latest collection is ever published.
type Recomputer struct {
	delay    time.Duration
	observer Observer

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	latest     Snapshot
	published  bool
	closed     bool
	done       chan struct{}
}

// NewRecomputer creates a Recomputer. A zero delay computes synchronously
// inside Trigger. observer may be nil.
func NewRecomputer(delay time.Duration, observer Observer) *Recomputer {
	return &Recomputer{
		delay:    delay,
		observer: observer,
		done:     make(chan struct{}),
	}
}

// Trigger schedules a recomputation over recipes, cancelling the pending one.
func (r *Recomputer) Trigger(recipes []model.Recipe) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.generation++
	gen := r.generation
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	if r.delay <= 0 {
		r.mu.Unlock()
		r.run(gen, recipes)
		return
	}

	r.timer = time.AfterFunc(r.delay, func() { r.run(gen, recipes) })
	r.mu.Unlock()
}

func (r *Recomputer) run(gen uint64, recipes []model.Recipe) {
	start := time.Now()
	snap := Compute(recipes)

	r.mu.Lock()
	if gen != r.generation || r.closed {
		// superseded while computing
		r.mu.Unlock()
		return
	}
	r.latest = snap
	r.published = true
	r.timer = nil
	done := r.done
	r.done = make(chan struct{})
	r.mu.Unlock()

	close(done)
	elapsed := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveRecomputation(elapsed)
	}
	slog.Debug("Statistics recomputed", "recipes", snap.Count, "generation", gen, "duration", elapsed)
}

// Latest returns the most recently published snapshot, whether any snapshot
// has been published, and whether a newer computation is still pending.
func (r *Recomputer) Latest() (snap Snapshot, ok bool, pending bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, r.published, r.timer != nil
}

// Published returns a channel closed at the next publication.
func (r *Recomputer) Published() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Close cancels pending work. Later triggers are ignored.
func (r *Recomputer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
