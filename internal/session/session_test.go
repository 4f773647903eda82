package session

import (
	"testing"

	"cartscout/internal/api"
	"cartscout/internal/poll"
)

func queued(tick, pos int) poll.Event {
	p := pos
	return poll.Event{Status: &api.JobStatus{Status: api.StatusQueued, QueuePosition: &p}, Tick: tick}
}

func processing(tick int) poll.Event {
	return poll.Event{Status: &api.JobStatus{Status: api.StatusProcessing}, Tick: tick}
}

func TestNewSession(t *testing.T) {
	s := New()
	if s.Phase != PhaseBuilding {
		t.Errorf("phase = %v, want Building", s.Phase)
	}
	if s.ID == "" {
		t.Error("session id empty")
	}
}

func TestSetZipInput(t *testing.T) {
	cases := []struct{ in, want string }{
		{"02139", "02139"},
		{"0 2 1 3 9", "02139"},
		{"abc021x39zz", "02139"},
		{"021394567", "02139"},
		{"21", "21"},
		{"", ""},
	}
	s := New()
	for _, tc := range cases {
		s.SetZipInput(tc.in)
		if s.Zip != tc.want {
			t.Errorf("SetZipInput(%q): zip = %q, want %q", tc.in, s.Zip, tc.want)
		}
	}

	s.SetZipInput("02139")
	if !s.ZipValid() {
		t.Error("five digits should be valid")
	}
	s.SetZipInput("0213")
	if s.ZipValid() {
		t.Error("four digits should be invalid")
	}
}

func TestOptimisticSubmit(t *testing.T) {
	s := New()
	s.Cart.Add("bread")
	s.SetZipInput("02139")
	s.GoTo(PhaseLocation)

	// Phase advances before the round-trip resolves.
	s.BeginSubmit()
	if s.Phase != PhasePolling {
		t.Errorf("phase = %v, want Polling", s.Phase)
	}

	// Failure reverts with cart and ZIP intact.
	s.SubmitFailed()
	if s.Phase != PhaseLocation {
		t.Errorf("phase = %v, want Location", s.Phase)
	}
	if s.Cart.Len() != 1 || s.Zip != "02139" {
		t.Error("cart or ZIP lost on submit failure")
	}
}

func TestPollLifecycle(t *testing.T) {
	s := New()
	s.Cart.Add("bread")
	s.SetZipInput("02139")
	s.BeginSubmit()
	s.JobAccepted("abc123")

	if terminal := s.ApplyPoll(queued(1, 3)); terminal {
		t.Error("queued is not terminal")
	}
	if s.QueuePosition == nil || *s.QueuePosition != 3 {
		t.Error("queue position not surfaced")
	}
	if s.Progress != 10 {
		t.Errorf("progress = %d, want 10", s.Progress)
	}

	if terminal := s.ApplyPoll(processing(2)); terminal {
		t.Error("processing is not terminal")
	}
	if s.Progress != 20 {
		t.Errorf("progress = %d, want 20", s.Progress)
	}

	tt := 9.0
	complete := poll.Event{Status: &api.JobStatus{
		Status:    api.StatusComplete,
		Results:   map[string][]api.Product{"bread": {}},
		TotalTime: &tt,
	}, Tick: 3}
	if terminal := s.ApplyPoll(complete); !terminal {
		t.Error("complete must be terminal")
	}
	if s.Phase != PhaseResults {
		t.Errorf("phase = %v, want Results", s.Phase)
	}
	if s.Progress != 100 {
		t.Errorf("progress = %d, want 100", s.Progress)
	}
}

func TestProgressMonotonicAndCapped(t *testing.T) {
	s := New()
	s.BeginSubmit()
	last := 0
	for tick := 1; tick <= 20; tick++ {
		s.ApplyPoll(processing(tick))
		if s.Progress < last {
			t.Fatalf("progress decreased: %d -> %d", last, s.Progress)
		}
		last = s.Progress
	}
	// Never reaches 100 without a confirmed complete.
	if s.Progress != 90 {
		t.Errorf("progress = %d, want 90 cap", s.Progress)
	}
}

func TestFailedJobRevertsToLocation(t *testing.T) {
	s := New()
	s.Cart.Add("bread")
	s.SetZipInput("02139")
	s.BeginSubmit()
	s.JobAccepted("abc123")

	failed := poll.Event{Status: &api.JobStatus{Status: api.StatusFailed}, Tick: 1}
	if terminal := s.ApplyPoll(failed); !terminal {
		t.Error("failed must be terminal")
	}
	if s.Phase != PhaseLocation {
		t.Errorf("phase = %v, want Location", s.Phase)
	}
	if s.Cart.Len() != 1 || s.Zip != "02139" {
		t.Error("cart or ZIP cleared on job failure")
	}
}

func TestPollErrorRevertsToLocation(t *testing.T) {
	s := New()
	s.Cart.Add("bread")
	s.SetZipInput("02139")
	s.BeginSubmit()

	ev := poll.Event{Err: errFake{}, Tick: 1}
	if terminal := s.ApplyPoll(ev); !terminal {
		t.Error("poll error must be terminal")
	}
	if s.Phase != PhaseLocation {
		t.Errorf("phase = %v, want Location", s.Phase)
	}
	if s.Cart.Len() != 1 || s.Zip != "02139" {
		t.Error("cart or ZIP cleared on poll error")
	}
}

type errFake struct{}

func (errFake) Error() string { return "connection refused" }

func TestReset(t *testing.T) {
	s := New()
	oldID := s.ID
	s.Cart.Add("bread")
	s.Suggestions.Begin("milk")
	s.SetZipInput("02139")
	s.PrioritizeNearby = true
	s.BeginSubmit()
	s.JobAccepted("abc123")

	s.Reset()

	if s.Phase != PhaseBuilding {
		t.Errorf("phase = %v, want Building", s.Phase)
	}
	if s.Cart.Len() != 0 || s.Suggestions.Len() != 0 {
		t.Error("cart or suggestions survived reset")
	}
	if s.Zip != "" || s.PrioritizeNearby || s.JobID != "" || s.Progress != 0 {
		t.Error("job state survived reset")
	}
	if s.ID == oldID {
		t.Error("session id did not rotate")
	}
}
