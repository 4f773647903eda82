// Package poll runs the recurring job-status poll for a submitted pricing
// job. A Poller owns at most one active polling loop at a time: starting a
// new loop always cancels the previous one first, and Stop cancels
// unconditionally, so a stale timer can never fire across a phase reset.
package poll

import (
	"context"
	"sync"
	"time"

	"cartscout/internal/api"
	"cartscout/internal/logging"
)

// DefaultInterval is the fixed delay between status polls.
const DefaultInterval = 2 * time.Second

// Event is one poll outcome delivered to the consumer. Exactly one of Status
// and Err is set. Tick is the 1-based poll count for this job, used only to
// drive the synthetic progress indicator.
type Event struct {
	Status *api.JobStatus
	Err    error
	Tick   int
}

// Terminal reports whether this event ends the polling session: a complete
// or failed job, or any request error. A single transient error aborts the
// whole session; the user resubmits the cart rather than resuming the job.
func (e Event) Terminal() bool {
	if e.Err != nil {
		return true
	}
	if e.Status == nil {
		return false
	}
	return e.Status.Status == api.StatusComplete || e.Status.Status == api.StatusFailed
}

// Poller issues recurring status requests for the current job.
type Poller struct {
	client   *api.Client
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller. A non-positive interval falls back to
// DefaultInterval.
func New(client *api.Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{client: client, interval: interval}
}

// Start begins polling jobID and returns the event channel for this run. The
// first poll fires immediately, not after one interval. Any previous run is
// cancelled and drained before the new one starts, so at most one timer is
// ever live. The channel is closed after the terminal event.
func (p *Poller) Start(ctx context.Context, jobID string) <-chan Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	events := make(chan Event, 1)
	p.cancel = cancel
	p.done = done

	logging.Poll("start polling job %s every %v", jobID, p.interval)
	go p.run(runCtx, jobID, events, done)
	return events
}

// Stop cancels the active polling loop, if any, and waits for it to exit.
// Safe to call at any time, including after the loop already reached a
// terminal event.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active reports whether a polling loop is currently running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller) run(ctx context.Context, jobID string, events chan<- Event, done chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
		close(events)
		close(done)
	}()

	tick := 0
	for {
		tick++
		ev := p.pollOnce(ctx, jobID, tick)

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
		if ev.Terminal() {
			logging.Poll("job %s: polling finished after %d ticks", jobID, tick)
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context, jobID string, tick int) Event {
	status, err := p.client.JobStatus(ctx, jobID)
	if err != nil {
		logging.PollError("job %s tick %d: %v", jobID, tick, err)
		return Event{Err: err, Tick: tick}
	}
	logging.PollDebug("job %s tick %d: %s", jobID, tick, status.Status)
	return Event{Status: status, Tick: tick}
}

// Progress converts a tick count into the synthetic progress percentage:
// ten points per poll, capped at 90 until the server confirms completion.
// This is cosmetic and never implies completion on its own.
func Progress(tick int) int {
	p := tick * 10
	if p > 90 {
		p = 90
	}
	return p
}
