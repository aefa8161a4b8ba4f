package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/ui/input/types"
)

// ViewMode is active while a View dialog is open
type ViewMode struct{}

func NewViewMode() *ViewMode {
	return &ViewMode{}
}

func (m *ViewMode) Name() string {
	return "view"
}

func (m *ViewMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ViewMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ViewMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "enter", "v":
		return []types.Action{types.CloseModalAction{}}, true
	case "H":
		if ctx.HasDetail() {
			return []types.Action{types.ShowHistoryAction{}}, true
		}
	}
	return nil, false
}
