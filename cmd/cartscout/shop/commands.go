package shop

import (
	"context"

	"cartscout/internal/api"
	"cartscout/internal/config"
	"cartscout/internal/poll"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchSuggestions issues one clarification lookup for a tracker entry.
// Multiple lookups may be outstanding at once; each completion is routed back
// to its own entry by id.
func fetchSuggestions(client *api.Client, id int64, text string, contextNames []string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Clarify(context.Background(), text, contextNames)
		return clarifyResolvedMsg{id: id, result: result, err: err}
	}
}

// submitCart submits the finalized cart and location. The phase has already
// advanced optimistically by the time this runs.
func submitCart(client *api.Client, items []string, zip string, nearby bool) tea.Cmd {
	return func() tea.Msg {
		jobID, err := client.SubmitCart(context.Background(), items, zip, nearby)
		if err != nil {
			return submitFailedMsg{err: err}
		}
		return submitAcceptedMsg{jobID: jobID}
	}
}

// waitForPoll blocks on the next poll event. Re-issued after every
// non-terminal event; a closed channel means the loop was cancelled.
func waitForPoll(ch <-chan poll.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return pollClosedMsg{}
		}
		return pollEventMsg(ev)
	}
}

// waitForConfig blocks on the next hot-reloaded config.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return configWatchClosedMsg{}
		}
		return configReloadedMsg{cfg: cfg}
	}
}
