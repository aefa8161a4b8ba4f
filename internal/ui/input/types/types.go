package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeForm
	ModeRent
	ModeView
	ModeDeleteConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeForm:
		return "form"
	case ModeRent:
		return "rent"
	case ModeView:
		return "view"
	case ModeDeleteConfirm:
		return "delete-confirm"
	default:
		return "unknown"
	}
}

// Tab identifies a top level screen
type Tab int

const (
	TabHome Tab = iota
	TabCustomers
	TabFilms
)

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabCustomers:
		return "Customers"
	case TabFilms:
		return "Films"
	default:
		return "?"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentTab() Tab
	// HasRow reports whether a list row is under the cursor
	HasRow() bool
	CanRent() bool
	HasDetail() bool
	SearchTerm() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
