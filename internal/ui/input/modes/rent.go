package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/ui/input/types"
)

// RentMode collects the customer id of a rental
type RentMode struct {
	TextInputMode
}

func NewRentMode(ti *textinput.Model) *RentMode {
	return &RentMode{
		TextInputMode: NewTextInputMode(types.ModeRent, "rent", "Customer ID: ", ti),
	}
}

func (m *RentMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.CancelTextAction{Mode: types.ModeRent}}, true
	case "enter":
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeRent}}, true
	}
	return nil, false
}
