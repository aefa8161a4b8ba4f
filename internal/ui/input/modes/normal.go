package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	onList := ctx.CurrentTab() != types.TabHome

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return []types.Action{types.ClearStatusAction{}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "top"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "bottom"}}, true

	case tea.KeyLeft, tea.KeyPgUp:
		return []types.Action{types.PageAction{Delta: -1}}, true

	case tea.KeyRight, tea.KeyPgDown:
		return []types.Action{types.PageAction{Delta: 1}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchTabAction{Tab: (ctx.CurrentTab() + 1) % 3}}, true

	case tea.KeyEnter:
		if onList && ctx.HasRow() {
			return []types.Action{types.OpenViewAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "1":
		return []types.Action{types.SwitchTabAction{Tab: types.TabHome}}, true
	case "2":
		return []types.Action{types.SwitchTabAction{Tab: types.TabCustomers}}, true
	case "3":
		return []types.Action{types.SwitchTabAction{Tab: types.TabFilms}}, true
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "top"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "bottom"}}, true
	case "h":
		return []types.Action{types.PageAction{Delta: -1}}, true
	case "l":
		return []types.Action{types.PageAction{Delta: 1}}, true
	}

	if !onList {
		return nil, false
	}

	switch msg.String() {
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true
	case "a":
		return []types.Action{types.OpenAddAction{}}, true
	}

	if !ctx.HasRow() {
		return nil, false
	}

	switch msg.String() {
	case "e":
		return []types.Action{types.OpenEditAction{}}, true
	case "v":
		return []types.Action{types.OpenViewAction{}}, true
	case "d":
		return []types.Action{types.DeleteAction{}}, true
	case "R":
		if ctx.CanRent() {
			return []types.Action{types.OpenRentAction{}}, true
		}
	}

	return nil, false
}
