// Package shop implements the interactive four-phase shopping interface:
// cart building with AI-assisted clarification, location entry, job polling,
// and best-price results.
package shop

import (
	"time"

	"cartscout/cmd/cartscout/ui"
	"cartscout/internal/api"
	"cartscout/internal/config"
	"cartscout/internal/logging"
	"cartscout/internal/poll"
	"cartscout/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel builds the initial model from options.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	styles := ui.NewStyles(ui.DetectTheme())

	input := textinput.New()
	input.Placeholder = "e.g. milk, whole wheat bread, eggs..."
	input.CharLimit = 80
	input.Width = 48
	input.Focus()

	zipInput := textinput.New()
	zipInput.Placeholder = "5-digit ZIP"
	zipInput.CharLimit = session.ZipLength
	zipInput.Width = 12

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	timeout, err := cfg.BackendTimeout()
	if err != nil {
		timeout = 30 * time.Second
	}
	interval, err := cfg.PollInterval()
	if err != nil {
		interval = poll.DefaultInterval
	}

	client := api.New(api.Config{BaseURL: cfg.Backend.BaseURL, Timeout: timeout})

	sess := session.New()
	sess.SetZipInput(cfg.Search.ZipCode)
	sess.PrioritizeNearby = cfg.Search.PrioritizeNearby
	zipInput.SetValue(sess.Zip)

	m := Model{
		input:    input,
		zipInput: zipInput,
		spinner:  sp,
		prog:     progress.New(progress.WithDefaultGradient()),
		styles:   styles,
		sess:     sess,
		client:   client,
		poller:   poll.New(client, interval),
		cfg:      cfg,
		cfgPath:  opts.ConfigPath,
	}

	if opts.ConfigPath != "" {
		updates, stop, err := config.Watch(opts.ConfigPath)
		if err != nil {
			logging.Config("config watching disabled: %v", err)
		} else {
			m.cfgUpdates = updates
			m.cfgStop = stop
		}
	}
	return m
}

// Init starts the spinner, and the config watch listener when available.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.cfgUpdates != nil {
		cmds = append(cmds, waitForConfig(m.cfgUpdates))
	}
	logging.Boot("interactive session %s started", m.sess.ID)
	return tea.Batch(cmds...)
}

// performShutdown releases everything the model owns. Called once on quit.
func (m *Model) performShutdown() {
	m.poller.Stop()
	if m.cfgStop != nil {
		m.cfgStop()
		m.cfgStop = nil
	}
	logging.Session("interactive session %s shut down", m.sess.ID)
}

// applyConfig swaps in a hot-reloaded config. The backend client and poller
// are only rebuilt outside the Polling phase; a live job keeps its client.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	if m.sess.Phase == session.PhasePolling {
		logging.Config("deferring backend config change: job in flight")
		return
	}
	timeout, err := cfg.BackendTimeout()
	if err != nil {
		timeout = 30 * time.Second
	}
	interval, err := cfg.PollInterval()
	if err != nil {
		interval = poll.DefaultInterval
	}
	m.poller.Stop()
	m.client = api.New(api.Config{BaseURL: cfg.Backend.BaseURL, Timeout: timeout})
	m.poller = poll.New(m.client, interval)
}

// resetSearch abandons everything and returns to the Building phase. The
// active timer, if any, is cancelled unconditionally.
func (m *Model) resetSearch() {
	m.poller.Stop()
	m.pollEvents = nil
	m.sess.Reset()
	m.sess.SetZipInput(m.cfg.Search.ZipCode)
	m.zipInput.SetValue(m.sess.Zip)
	m.input.SetValue("")
	m.input.Focus()
	m.zipInput.Blur()
	m.inputMode = InputModeText
	m.focus = 0
	m.confirmClear = false
	m.showAll = false
	m.notice = ""
}
