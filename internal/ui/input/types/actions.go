package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "top", "bottom"
}

func (a NavigateAction) Type() string { return "navigate" }

type PageAction struct {
	Delta int // -1 previous page, +1 next page
}

func (a PageAction) Type() string { return "page" }

type SwitchTabAction struct {
	Tab Tab
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Form actions
type FocusFieldAction struct {
	Delta int
}

func (a FocusFieldAction) Type() string { return "focus_field" }

// Dialog actions
type OpenAddAction struct{}

func (a OpenAddAction) Type() string { return "open_add" }

type OpenEditAction struct{}

func (a OpenEditAction) Type() string { return "open_edit" }

type OpenViewAction struct{}

func (a OpenViewAction) Type() string { return "open_view" }

type OpenRentAction struct{}

func (a OpenRentAction) Type() string { return "open_rent" }

type CloseModalAction struct{}

func (a CloseModalAction) Type() string { return "close_modal" }

type ShowHistoryAction struct{}

func (a ShowHistoryAction) Type() string { return "show_history" }

// Delete actions
type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

type ConfirmDeleteAction struct{}

func (a ConfirmDeleteAction) Type() string { return "confirm_delete" }

type CancelDeleteAction struct{}

func (a CancelDeleteAction) Type() string { return "cancel_delete" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ClearStatusAction struct{}

func (a ClearStatusAction) Type() string { return "clear_status" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
