package monitor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/luckfunc/gardenstock/internal/logging"
	"github.com/luckfunc/gardenstock/internal/services"
)

const (
	StatusInitializing = "initializing"
	StatusOK           = "ok"
	StatusError        = "error"
)

// Publisher prints a JSON status line when the cycle status changes, on
// every error, and otherwise at most once per heartbeat interval.
type Publisher struct {
	source    string
	heartbeat time.Duration
	emit      func(string)
	now       func() time.Time

	mu              sync.Mutex
	prevStatus      string
	lastPublishTime time.Time
}

func NewPublisher(source string, heartbeat time.Duration) *Publisher {
	return &Publisher{
		source:    source,
		heartbeat: heartbeat,
		emit:      logging.JSON,
		now:       time.Now,
	}
}

// Start emits the initializing message.
func (p *Publisher) Start() {
	now := p.now()
	p.write(StatusMessage{
		Status:    StatusInitializing,
		Source:    p.source,
		Timestamp: now.Unix(),
		LastCheck: float64(now.UnixNano()) / 1e9,
	})
	p.mu.Lock()
	p.lastPublishTime = now.Add(-p.heartbeat)
	p.mu.Unlock()
}

// FromOutcome converts a poll outcome into a Result.
func FromOutcome(out services.Outcome) Result {
	r := Result{
		Status:    StatusOK,
		Timestamp: out.Started.Unix(),
		Latency:   out.Latency.Seconds(),
	}
	if out.Err != nil {
		r.Status = StatusError
		r.Error = out.Err.Error()
		return r
	}
	if s := out.Snapshot; s != nil {
		r.Gear, r.Seeds, r.Eggs = len(s.Gear), len(s.Seeds), len(s.Eggs)
	}
	return r
}

// Publish reports a result and returns whether a line was written.
func (p *Publisher) Publish(r Result) bool {
	p.mu.Lock()
	now := p.now()
	publish := r.Status != p.prevStatus || r.Status == StatusError || now.Sub(p.lastPublishTime) >= p.heartbeat
	if publish {
		p.lastPublishTime = now
		p.prevStatus = r.Status
	}
	p.mu.Unlock()
	if !publish {
		return false
	}

	p.write(StatusMessage{
		Status:      r.Status,
		Source:      p.source,
		Timestamp:   r.Timestamp,
		LastCheck:   float64(now.UnixNano()) / 1e9,
		Gear:        r.Gear,
		Seeds:       r.Seeds,
		Eggs:        r.Eggs,
		Error:       r.Error,
		Latency:     r.Latency,
		LatencyText: humanize.FtoaWithDigits(r.Latency*1000, 1) + "ms",
		Clients:     r.Clients,
		Dropped:     r.Dropped,
	})
	return true
}

func (p *Publisher) write(msg StatusMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Printf("Error serializing message: %v", err)
		return
	}
	p.emit(string(data))
}
