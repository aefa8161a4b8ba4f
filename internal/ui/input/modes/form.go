package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/ui/input/types"
)

// FormMode edits the focused field of an Add or Edit dialog. The dialog stays
// open after enter; the model leaves this mode once the dialog closes.
type FormMode struct {
	TextInputMode
}

func NewFormMode(ti *textinput.Model) *FormMode {
	return &FormMode{
		TextInputMode: NewTextInputMode(types.ModeForm, "form", "", ti),
	}
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.CancelTextAction{Mode: types.ModeForm}}, true
	case "enter", "ctrl+s":
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeForm}}, true
	case "tab", "down":
		return []types.Action{types.FocusFieldAction{Delta: 1}}, true
	case "shift+tab", "up":
		return []types.Action{types.FocusFieldAction{Delta: -1}}, true
	}
	return nil, false
}
