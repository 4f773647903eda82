// Package suggest tracks in-flight and completed clarification lookups.
//
// Each submitted raw item text gets one entry with a locally generated
// monotonic id. Lookups resolve asynchronously and in any order; every update
// is applied against the authoritative keyed collection by id, never against
// a positional snapshot, so an out-of-order completion can never clobber a
// different entry.
package suggest

import (
	"cartscout/internal/api"
	"cartscout/internal/logging"
)

// Status is the lifecycle state of one pending suggestion.
type Status int

const (
	StatusLoading Status = iota
	StatusComplete
	StatusError
)

// String returns the short display name for a status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// MaxAlternatives caps how many alternatives are offered per entry.
const MaxAlternatives = 3

// Entry is one submitted raw text awaiting or holding name candidates.
type Entry struct {
	ID       int64
	Original string
	Status   Status
	Result   *api.ClarifyResult
}

// Options returns the selectable names for this entry: the primary suggestion
// followed by up to MaxAlternatives alternatives. A degenerate completion
// (backend answered with no suggested name) offers nothing, matching the
// error display, though the two are logged distinctly.
func (e *Entry) Options() []string {
	if e.Status != StatusComplete || e.Result == nil || e.Result.Suggested == nil {
		return nil
	}
	opts := []string{e.Result.Suggested.Name}
	for i, alt := range e.Result.Alternatives {
		if i >= MaxAlternatives {
			break
		}
		opts = append(opts, alt.Name)
	}
	return opts
}

// Tracker owns the set of pending suggestions, keyed by id and rendered in
// submission order. Mutated only from the single UI event loop.
type Tracker struct {
	nextID  int64
	order   []int64
	entries map[int64]*Entry
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[int64]*Entry)}
}

// Begin registers a new submitted text and returns its entry in the Loading
// state. The caller is responsible for starting the lookup.
func (t *Tracker) Begin(text string) *Entry {
	t.nextID++
	e := &Entry{ID: t.nextID, Original: text, Status: StatusLoading}
	t.entries[e.ID] = e
	t.order = append(t.order, e.ID)
	logging.Suggest("begin #%d %q (%d pending)", e.ID, text, len(t.order))
	return e
}

// Resolve marks the entry Complete with the given result. A resolution for a
// removed id, or for an entry that already reached a terminal state, is a
// silent no-op: the lookup may have raced a user selection or a retry.
func (t *Tracker) Resolve(id int64, result *api.ClarifyResult) bool {
	e, ok := t.entries[id]
	if !ok || e.Status != StatusLoading {
		logging.SuggestDebug("stale resolve for #%d ignored", id)
		return false
	}
	e.Status = StatusComplete
	e.Result = result
	if result == nil || result.Suggested == nil {
		// Backend answered but offered nothing. Observably similar to a
		// failure, but it is a completed lookup, not a failed one.
		logging.Suggest("complete #%d %q: no suggestion", id, e.Original)
	} else {
		logging.Suggest("complete #%d %q -> %q", id, e.Original, result.Suggested.Name)
	}
	return true
}

// Fail marks the entry Error. Same staleness rules as Resolve.
func (t *Tracker) Fail(id int64) bool {
	e, ok := t.entries[id]
	if !ok || e.Status != StatusLoading {
		logging.SuggestDebug("stale failure for #%d ignored", id)
		return false
	}
	e.Status = StatusError
	e.Result = nil
	logging.SuggestWarn("error #%d %q", id, e.Original)
	return true
}

// Retry resets an Error entry back to Loading with the same id so the caller
// can re-issue the lookup with the original text. Error entries never expire
// on their own; retry and session reset are the only ways out.
func (t *Tracker) Retry(id int64) (*Entry, bool) {
	e, ok := t.entries[id]
	if !ok || e.Status != StatusError {
		return nil, false
	}
	e.Status = StatusLoading
	e.Result = nil
	logging.Suggest("retry #%d %q", id, e.Original)
	return e, true
}

// Remove deletes the entry for id, leaving all other entries untouched.
// Called when the user selects one of the entry's offered names.
func (t *Tracker) Remove(id int64) bool {
	if _, ok := t.entries[id]; !ok {
		return false
	}
	delete(t.entries, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	logging.Suggest("removed #%d (%d remaining)", id, len(t.order))
	return true
}

// Get returns the entry for id, if present.
func (t *Tracker) Get(id int64) (*Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Entries returns all entries in submission order.
func (t *Tracker) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.entries[id])
	}
	return out
}

// Len returns the number of tracked entries.
func (t *Tracker) Len() int { return len(t.order) }

// Clear drops every entry. Used on session reset.
func (t *Tracker) Clear() {
	t.order = nil
	t.entries = make(map[int64]*Entry)
}
