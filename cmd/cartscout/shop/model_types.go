package shop

import (
	"cartscout/cmd/cartscout/ui"
	"cartscout/internal/api"
	"cartscout/internal/config"
	"cartscout/internal/poll"
	"cartscout/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Options holds configuration for initializing the shopping interface.
type Options struct {
	Config     *config.Config
	ConfigPath string // watched for hot reload; empty disables watching
}

// InputMode represents the current input handling state in the Building
// phase: either typing a new item, or navigating the pending-suggestion and
// cart rows. A single state machine keeps Update() from juggling scattered
// focus flags.
type InputMode int

const (
	InputModeText InputMode = iota // Default: keystrokes go to the item input
	InputModePick                  // Arrow keys move focus across rows
)

// Model is the main model for the interactive shopping interface.
type Model struct {
	// UI components
	input    textinput.Model // item entry (Building)
	zipInput textinput.Model // ZIP entry (Location)
	spinner  spinner.Model
	prog     progress.Model
	viewport viewport.Model // results scrolling
	styles   ui.Styles

	// Core state
	sess   *session.Session
	client *api.Client
	poller *poll.Poller

	// Config
	cfg        *config.Config
	cfgPath    string
	cfgUpdates <-chan *config.Config
	cfgStop    func()

	// Building phase
	inputMode    InputMode
	focus        int  // focused row in pick mode: pending entries, then cart items
	confirmClear bool // next keystroke confirms or cancels a cart clear

	// Polling phase
	pollEvents <-chan poll.Event

	// Results phase
	showAll bool // expand tie groups and non-best offers

	// Transient user notice (declined adds, failures)
	notice string

	width  int
	height int
	ready  bool
}
