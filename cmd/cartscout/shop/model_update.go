package shop

import (
	"context"
	"strings"

	"cartscout/internal/api"
	"cartscout/internal/cart"
	"cartscout/internal/logging"
	"cartscout/internal/poll"
	"cartscout/internal/session"
	"cartscout/internal/suggest"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = min(msg.Width-8, 50)
		vpHeight := msg.Height - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		if m.sess.Phase == session.PhaseResults {
			m.viewport.SetContent(m.renderResultsContent())
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clarifyResolvedMsg:
		// Applied by id against the authoritative collection; the entry may
		// have been removed by a user selection while the lookup was in
		// flight, in which case this is a no-op.
		if msg.err != nil {
			if m.sess.Suggestions.Fail(msg.id) {
				m.notice = "couldn't get suggestions — add the typed name or retry"
			}
			return m, nil
		}
		m.sess.Suggestions.Resolve(msg.id, msg.result)
		return m, nil

	case submitAcceptedMsg:
		// The user may have escaped back to Location while the submission
		// round-trip was in flight; a late acceptance must not start a job.
		if m.sess.Phase != session.PhasePolling {
			return m, nil
		}
		m.sess.JobAccepted(msg.jobID)
		m.pollEvents = m.poller.Start(context.Background(), msg.jobID)
		return m, waitForPoll(m.pollEvents)

	case submitFailedMsg:
		logging.Session("submit failed: %v", msg.err)
		m.notice = "couldn't start the search — check your connection and try again"
		m.sess.SubmitFailed()
		m.zipInput.Focus()
		return m, nil

	case pollEventMsg:
		// An event buffered in a cancelled run's channel can still be
		// delivered after esc or reset; it belongs to a dead job.
		if m.pollEvents == nil || m.sess.Phase != session.PhasePolling {
			return m, nil
		}
		return m.handlePollEvent(poll.Event(msg))

	case pollClosedMsg:
		// The loop was cancelled underneath the listener (reset or abort).
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		m.notice = "configuration reloaded"
		return m, waitForConfig(m.cfgUpdates)

	case configWatchClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handlePollEvent(ev poll.Event) (tea.Model, tea.Cmd) {
	terminal := m.sess.ApplyPoll(ev)
	if !terminal {
		return m, waitForPoll(m.pollEvents)
	}

	m.pollEvents = nil
	switch {
	case ev.Err != nil:
		m.notice = "lost contact with the pricing service — submit again when ready"
		m.zipInput.Focus()
	case ev.Status.Status == api.StatusFailed:
		m.notice = "the pricing job failed — your cart and ZIP are unchanged, try again"
		m.zipInput.Focus()
	default:
		// Complete: session already advanced to Results.
		if m.ready {
			m.viewport.SetContent(m.renderResultsContent())
			m.viewport.GotoTop()
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.performShutdown()
		return m, tea.Quit
	}

	// A pending clear confirmation swallows the next keystroke.
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" {
			m.sess.Cart.Clear()
			m.notice = "cart cleared"
			m.focus = 0
		} else {
			m.notice = ""
		}
		return m, nil
	}

	switch m.sess.Phase {
	case session.PhaseBuilding:
		return m.updateBuilding(msg)
	case session.PhaseLocation:
		return m.updateLocation(msg)
	case session.PhasePolling:
		return m.updatePolling(msg)
	case session.PhaseResults:
		return m.updateResults(msg)
	}
	return m, nil
}

// rowCount is the number of navigable rows in pick mode: pending suggestion
// entries first, then cart items.
func (m *Model) rowCount() int {
	return m.sess.Suggestions.Len() + m.sess.Cart.Len()
}

func (m *Model) clampFocus() {
	if n := m.rowCount(); m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func (m Model) updateBuilding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		if m.sess.Cart.Len() > 0 {
			m.confirmClear = true
			m.notice = "clear the whole cart? press y to confirm"
		}
		return m, nil

	case "tab":
		if m.inputMode == InputModeText && m.rowCount() > 0 {
			m.inputMode = InputModePick
			m.input.Blur()
			m.clampFocus()
		} else {
			m.inputMode = InputModeText
			m.input.Focus()
		}
		return m, nil
	}

	if m.inputMode == InputModePick {
		return m.updateBuildingPick(msg)
	}
	return m.updateBuildingText(msg)
}

func (m Model) updateBuildingText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			// Empty enter continues to the Location phase.
			if m.sess.Cart.Len() == 0 {
				m.notice = "add at least one item first"
				return m, nil
			}
			m.sess.GoTo(session.PhaseLocation)
			m.input.Blur()
			m.zipInput.Focus()
			m.notice = ""
			return m, nil
		}

		entry := m.sess.Suggestions.Begin(text)
		m.input.SetValue("")
		m.notice = ""
		return m, fetchSuggestions(m.client, entry.ID, text, m.sess.Cart.Items())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBuildingPick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.sess.Suggestions.Entries()

	switch msg.String() {
	case "esc":
		m.inputMode = InputModeText
		m.input.Focus()
		return m, nil

	case "up", "k":
		if msg.String() == "k" && m.focus < len(entries) {
			break // k on a pending entry keeps the typed name, handled below
		}
		m.focus--
		m.clampFocus()
		return m, nil

	case "down", "j":
		m.focus++
		m.clampFocus()
		return m, nil
	}

	if m.focus < len(entries) {
		return m.updatePendingRow(msg, entries[m.focus])
	}

	// Cart row
	ci := m.focus - len(entries)
	switch msg.String() {
	case "backspace", "d", "x":
		if m.sess.Cart.Remove(ci) {
			m.clampFocus()
			if m.rowCount() == 0 {
				m.inputMode = InputModeText
				m.input.Focus()
			}
		}
	}
	return m, nil
}

func (m Model) updatePendingRow(msg tea.KeyMsg, entry *suggest.Entry) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4":
		opts := entry.Options()
		idx := int(msg.String()[0] - '1')
		if idx < len(opts) {
			m.selectSuggestion(entry.ID, opts[idx])
		}

	case "k":
		// Keep the originally typed name; always available, and the manual
		// path when the lookup failed or offered nothing.
		m.selectSuggestion(entry.ID, entry.Original)

	case "r":
		if e, ok := m.sess.Suggestions.Retry(entry.ID); ok {
			return m, fetchSuggestions(m.client, e.ID, e.Original, m.sess.Cart.Items())
		}
	}
	return m, nil
}

// selectSuggestion confirms a name into the cart and removes the originating
// pending entry. Only that entry is touched; concurrent entries are
// unaffected. A declined add still consumes the entry but surfaces why.
func (m *Model) selectSuggestion(id int64, name string) {
	if notice := m.sess.Cart.Add(name); notice != cart.NoticeAdded {
		m.notice = notice.String()
	} else {
		m.notice = ""
	}
	m.sess.Suggestions.Remove(id)
	m.clampFocus()
	if m.rowCount() == 0 {
		m.inputMode = InputModeText
		m.input.Focus()
	}
}

func (m Model) updateLocation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.sess.GoTo(session.PhaseBuilding)
		m.zipInput.Blur()
		m.input.Focus()
		m.inputMode = InputModeText
		return m, nil

	case "n":
		// Letters are stripped by the ZIP sanitizer anyway, so 'n' is free
		// to toggle the nearby preference.
		m.sess.PrioritizeNearby = !m.sess.PrioritizeNearby
		return m, nil

	case "enter":
		if !m.sess.ZipValid() {
			m.notice = "ZIP code must be exactly 5 digits"
			return m, nil
		}
		m.notice = ""
		m.zipInput.Blur()
		// Optimistic: show the waiting state before the round-trip resolves.
		m.sess.BeginSubmit()
		return m, submitCart(m.client, m.sess.Cart.Items(), m.sess.Zip, m.sess.PrioritizeNearby)
	}

	var cmd tea.Cmd
	m.zipInput, cmd = m.zipInput.Update(msg)
	m.sess.SetZipInput(m.zipInput.Value())
	m.zipInput.SetValue(m.sess.Zip)
	return m, cmd
}

func (m Model) updatePolling(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.poller.Stop()
		m.pollEvents = nil
		m.sess.GoTo(session.PhaseLocation)
		m.zipInput.Focus()
		m.notice = "search cancelled — cart and ZIP kept"
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.resetSearch()
		return m, nil

	case "t":
		m.showAll = !m.showAll
		m.viewport.SetContent(m.renderResultsContent())
		return m, nil

	case "q", "esc":
		m.performShutdown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
