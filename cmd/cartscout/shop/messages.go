package shop

import (
	"cartscout/internal/api"
	"cartscout/internal/config"
	"cartscout/internal/poll"
)

// Messages for tea updates
type (
	// clarifyResolvedMsg carries one finished clarification lookup. Applied
	// against the tracker by id; the entry may already be gone.
	clarifyResolvedMsg struct {
		id     int64
		result *api.ClarifyResult
		err    error
	}

	// submitAcceptedMsg means the backend accepted the cart and issued a job.
	submitAcceptedMsg struct {
		jobID string
	}

	// submitFailedMsg means the cart submission itself failed.
	submitFailedMsg struct {
		err error
	}

	// pollEventMsg is one event from the active polling loop.
	pollEventMsg poll.Event

	// pollClosedMsg means the event channel closed without a terminal event:
	// the loop was cancelled underneath the listener. Stale, ignored.
	pollClosedMsg struct{}

	// configReloadedMsg carries a hot-reloaded config.
	configReloadedMsg struct {
		cfg *config.Config
	}

	// configWatchClosedMsg means the watcher shut down.
	configWatchClosedMsg struct{}
)
