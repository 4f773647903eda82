// Package session owns the per-session workflow state: the active phase, the
// cart, the pending suggestions, and the current job. A Session is created on
// load and replaced wholesale on "new search"; nothing is implicitly shared
// across sessions.
package session

import (
	"strings"

	"cartscout/internal/api"
	"cartscout/internal/cart"
	"cartscout/internal/logging"
	"cartscout/internal/poll"
	"cartscout/internal/suggest"

	"github.com/google/uuid"
)

// Phase is one of the four mutually exclusive workflow stages. Exactly one is
// active at any time.
type Phase int

const (
	PhaseBuilding Phase = iota + 1
	PhaseLocation
	PhasePolling
	PhaseResults
)

// String returns the display name for a phase.
func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "Build your list"
	case PhaseLocation:
		return "Where are you?"
	case PhasePolling:
		return "Finding prices"
	case PhaseResults:
		return "Best prices"
	}
	return "unknown"
}

// ZipLength is the required ZIP code length.
const ZipLength = 5

// Session is the root workflow state for one search.
type Session struct {
	ID          string
	Phase       Phase
	Cart        *cart.Cart
	Suggestions *suggest.Tracker

	// Location input
	Zip              string
	PrioritizeNearby bool

	// Active job. At most one job exists per session at a time.
	JobID         string
	JobStatus     string
	QueuePosition *int
	Progress      int
	Results       map[string][]api.Product
	TotalTime     *float64
}

// New creates a fresh session in the Building phase.
func New() *Session {
	s := &Session{
		ID:          uuid.NewString(),
		Phase:       PhaseBuilding,
		Cart:        cart.New(),
		Suggestions: suggest.NewTracker(),
	}
	logging.Session("new session %s", s.ID)
	return s
}

// SetZipInput applies raw ZIP input: non-digit characters are stripped as
// typed (not rejected) and the result is capped at five digits. The invariant
// lives here at the input boundary; the stored Zip is only ever digits.
func (s *Session) SetZipInput(raw string) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == ZipLength {
			break
		}
	}
	s.Zip = b.String()
}

// ZipValid reports whether the ZIP is exactly five digits.
func (s *Session) ZipValid() bool {
	return len(s.Zip) == ZipLength
}

// GoTo transitions to the given phase.
func (s *Session) GoTo(p Phase) {
	if s.Phase == p {
		return
	}
	logging.Session("phase %d -> %d", s.Phase, p)
	s.Phase = p
}

// BeginSubmit optimistically enters the Polling phase before the submission
// round-trip resolves, clearing any previous job's leftovers. The UI shows a
// waiting state while the request is still in flight.
func (s *Session) BeginSubmit() {
	s.JobID = ""
	s.JobStatus = ""
	s.QueuePosition = nil
	s.Progress = 0
	s.Results = nil
	s.TotalTime = nil
	s.GoTo(PhasePolling)
}

// SubmitFailed reverts to the Location phase after a failed submission. The
// cart and ZIP stay intact for resubmission.
func (s *Session) SubmitFailed() {
	s.GoTo(PhaseLocation)
}

// JobAccepted records the backend job id once the submission succeeds.
func (s *Session) JobAccepted(jobID string) {
	s.JobID = jobID
	s.JobStatus = api.StatusQueued
	logging.Session("job %s accepted", jobID)
}

// ApplyPoll folds one poll event into the session and returns whether it was
// terminal. Progress is monotonically non-decreasing and reaches 100 only on
// a confirmed complete status; failures and errors revert to the Location
// phase with cart and ZIP preserved.
func (s *Session) ApplyPoll(ev poll.Event) bool {
	if ev.Err != nil {
		s.GoTo(PhaseLocation)
		return true
	}

	if p := poll.Progress(ev.Tick); p > s.Progress {
		s.Progress = p
	}
	s.JobStatus = ev.Status.Status
	s.QueuePosition = ev.Status.QueuePosition

	switch ev.Status.Status {
	case api.StatusComplete:
		s.Progress = 100
		s.Results = ev.Status.Results
		s.TotalTime = ev.Status.TotalTime
		s.GoTo(PhaseResults)
		return true
	case api.StatusFailed:
		s.GoTo(PhaseLocation)
		return true
	}
	return false
}

// Reset starts a new search: everything but configuration is discarded and
// the session id rotates. The caller must stop any active poller first.
func (s *Session) Reset() {
	logging.Session("reset session %s", s.ID)
	s.ID = uuid.NewString()
	s.Phase = PhaseBuilding
	s.Cart.Clear()
	s.Suggestions.Clear()
	s.Zip = ""
	s.PrioritizeNearby = false
	s.JobID = ""
	s.JobStatus = ""
	s.QueuePosition = nil
	s.Progress = 0
	s.Results = nil
	s.TotalTime = nil
}
