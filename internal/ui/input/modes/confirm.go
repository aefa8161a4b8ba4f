package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/ui/input/types"
)

// ConfirmMode asks the blocking yes/no question before a delete is sent
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y":
		return []types.Action{
			types.ConfirmDeleteAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "N", "esc":
		return []types.Action{
			types.CancelDeleteAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Any other key is swallowed; the question must be answered
	return nil, true
}
