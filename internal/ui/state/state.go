package state

import (
	"rentaldesk/internal/ui/input/types"
)

// StatusKind decides how the status line is colored
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// AppState contains the screen state that is not owned by a workflow
type AppState struct {
	Tab types.Tab

	// Row cursor per list tab
	Cursors map[types.Tab]int

	// Focused field of the open Add/Edit dialog
	FormField int

	// UI state
	Width          int
	Height         int
	ViewportHeight int // rows available to the list table
	ShowFullHelp   bool
	InPager        bool

	StatusMessage string
	StatusKind    StatusKind

	// Workflow that set the status and whether it was a list load failure.
	// Only a fetch failure is cleared by the same workflow's next load.
	StatusSource string
	StatusFetch  bool
}

// NewAppState creates a new application state
func NewAppState(start types.Tab) *AppState {
	return &AppState{
		Tab:            start,
		Cursors:        make(map[types.Tab]int),
		ViewportHeight: 10,
	}
}

// Cursor returns the row cursor of the current tab
func (s *AppState) Cursor() int {
	return s.Cursors[s.Tab]
}

// SetCursor moves the current tab's cursor, clamped to [0, rows)
func (s *AppState) SetCursor(idx, rows int) {
	switch {
	case rows <= 0:
		idx = 0
	case idx >= rows:
		idx = rows - 1
	case idx < 0:
		idx = 0
	}
	s.Cursors[s.Tab] = idx
}

// ClampCursor keeps every tab's cursor inside its current row count
func (s *AppState) ClampCursor(tab types.Tab, rows int) {
	idx := s.Cursors[tab]
	if rows <= 0 {
		idx = 0
	} else if idx >= rows {
		idx = rows - 1
	}
	s.Cursors[tab] = idx
}

// MoveField moves the form focus by delta, wrapping around n fields
func (s *AppState) MoveField(delta, n int) {
	if n <= 0 {
		s.FormField = 0
		return
	}
	s.FormField = ((s.FormField+delta)%n + n) % n
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(kind StatusKind, msg string) {
	s.StatusKind = kind
	s.StatusMessage = msg
	s.StatusSource = ""
	s.StatusFetch = false
}

// SetFetchError shows a list load failure of the given workflow
func (s *AppState) SetFetchError(workflow, msg string) {
	s.SetStatus(StatusError, msg)
	s.StatusSource = workflow
	s.StatusFetch = true
}

// ClearFetchError clears the status if it is a load failure of workflow
func (s *AppState) ClearFetchError(workflow string) {
	if s.StatusFetch && s.StatusSource == workflow {
		s.ClearStatus()
	}
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusKind = StatusInfo
	s.StatusSource = ""
	s.StatusFetch = false
}
