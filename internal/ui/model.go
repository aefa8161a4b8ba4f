package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rentaldesk/internal/config"
	"rentaldesk/internal/dashboard"
	"rentaldesk/internal/domain"
	"rentaldesk/internal/ui/handlers"
	"rentaldesk/internal/ui/input"
	inputtypes "rentaldesk/internal/ui/input/types"
	"rentaldesk/internal/ui/state"
	"rentaldesk/internal/ui/views"
	"rentaldesk/internal/workflow"
)

const statusTTL = 3 * time.Second

// listWorkflow is the part of a workflow that does not depend on its entity type
type listWorkflow interface {
	Query() domain.Query
	Modal() workflow.Modal
	PendingDelete() (int, bool)
	PageSize() int
	CanRent() bool
	HasDetail() bool
	SetSearchTerm(term string) tea.Cmd
	NextPage() tea.Cmd
	PrevPage() tea.Cmd
	Refresh() tea.Cmd
	OpenAdd() tea.Cmd
	CloseModal() tea.Cmd
	SetDraftField(name, value string) tea.Cmd
	SubmitDraft() tea.Cmd
	DeleteEntity(id int) tea.Cmd
	ConfirmDelete() tea.Cmd
	CancelDelete() tea.Cmd
}

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState

	keys KeyMap
	help help.Model

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler

	customers *workflow.Workflow[domain.Customer]
	films     *workflow.Workflow[domain.Film]
	dashboard *dashboard.Model

	pager   Pager
	program *tea.Program
}

// NewModel creates the root model over the two list workflows and the dashboard
func NewModel(cfg *config.Config, customers *workflow.Workflow[domain.Customer], films *workflow.Workflow[domain.Film], dash *dashboard.Model) *Model {
	appState := state.NewAppState(startTab(cfg.UI.StartTab))

	return &Model{
		config:       cfg,
		state:        appState,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		eventHandler: handlers.NewEventHandler(appState),
		inputHandler: input.New(),
		customers:    customers,
		films:        films,
		dashboard:    dash,
	}
}

func startTab(name string) inputtypes.Tab {
	switch name {
	case "customers":
		return inputtypes.TabCustomers
	case "films":
		return inputtypes.TabFilms
	default:
		return inputtypes.TabHome
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewOvPager(p)
	}
}

// SetPager replaces the pager used for help and rental history
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Init loads the dashboard and the first page of both lists
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.dashboard.Init(), m.customers.Init(), m.films.Init())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width - 4
		m.updateViewportHeight()

	case tea.KeyMsg:
		if m.state.InPager {
			return m, nil
		}
		cmds = append(cmds, m.handleKey(msg))

	case EventMsg:
		m.eventHandler.HandleEvent(msg.Event)
		if m.state.StatusKind == state.StatusSuccess {
			cmds = append(cmds, clearStatusAfter(m.state.StatusMessage))
		}

	case pagerDoneMsg:
		if msg.err != nil {
			zap.S().Warnw("pager failed", "what", msg.what, "error", msg.err)
			m.state.SetStatus(state.StatusWarning, "Could not open the pager: "+msg.err.Error())
		}

	case pauseRenderingMsg:
		m.state.InPager = true

	case resumeRenderingMsg:
		m.state.InPager = false

	case clearStatusMsg:
		if m.state.StatusMessage == msg.message {
			m.state.ClearStatus()
		}

	default:
		// Workflow, dashboard and text input results
		cmds = append(cmds,
			m.customers.Update(msg),
			m.films.Update(msg),
			m.dashboard.Update(msg),
			m.inputHandler.Update(msg),
		)
	}

	m.syncMode()
	m.clampCursors()
	return m, tea.Batch(cmds...)
}

func clearStatusAfter(message string) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{message: message}
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// active returns the workflow behind the current tab, nil on the dashboard
func (m *Model) active() listWorkflow {
	switch m.state.Tab {
	case inputtypes.TabCustomers:
		return m.customers
	case inputtypes.TabFilms:
		return m.films
	default:
		return nil
	}
}

func (m *Model) rowCount(tab inputtypes.Tab) int {
	switch tab {
	case inputtypes.TabCustomers:
		return len(m.customers.Snapshot().Page.Items)
	case inputtypes.TabFilms:
		return len(m.films.Snapshot().Page.Items)
	default:
		return 0
	}
}

func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{Tab: m.state.Tab}
	if wf := m.active(); wf != nil {
		ctx.RowCount = m.rowCount(m.state.Tab)
		ctx.Rentable = wf.CanRent()
		ctx.Detail = wf.HasDetail()
		ctx.SearchText = wf.Query().SearchTerm
	}
	return ctx
}

func selected[T any](items []T, idx int) (T, bool) {
	var zero T
	if idx < 0 || idx >= len(items) {
		return zero, false
	}
	return items[idx], true
}

func draftOf(modal workflow.Modal) (workflow.Draft, bool) {
	switch mm := modal.(type) {
	case workflow.AddModal:
		return mm.Draft, true
	case workflow.EditModal:
		return mm.Draft, true
	}
	return workflow.Draft{}, false
}

// focusedField returns the name and value of the form field under focus
func (m *Model) focusedField(wf listWorkflow) (workflow.Field, bool) {
	draft, ok := draftOf(wf.Modal())
	if !ok {
		return workflow.Field{}, false
	}
	fields := draft.Fields()
	if m.state.FormField < 0 || m.state.FormField >= len(fields) {
		return workflow.Field{}, false
	}
	return fields[m.state.FormField], true
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	zap.S().Debugw("input action", "type", action.Type(), "tab", m.state.Tab.String())

	wf := m.active()

	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.SwitchTabAction:
		m.state.Tab = a.Tab
		return nil

	case inputtypes.ClearStatusAction:
		m.state.ClearStatus()
		return nil

	case inputtypes.ToggleHelpAction:
		if m.pager == nil {
			m.state.ShowFullHelp = !m.state.ShowFullHelp
			m.help.ShowAll = m.state.ShowFullHelp
			return nil
		}
		return m.showInPager("help", m.helpRenderer.RenderHelpContent(m.keys))

	case inputtypes.RefreshAction:
		if wf == nil {
			return m.dashboard.Reload()
		}
		return wf.Refresh()
	}

	if wf == nil {
		return nil
	}

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		rows := m.rowCount(m.state.Tab)
		switch a.Direction {
		case "up":
			m.state.SetCursor(m.state.Cursor()-1, rows)
		case "down":
			m.state.SetCursor(m.state.Cursor()+1, rows)
		case "top":
			m.state.SetCursor(0, rows)
		case "bottom":
			m.state.SetCursor(rows-1, rows)
		}

	case inputtypes.PageAction:
		m.state.SetCursor(0, 0)
		if a.Delta > 0 {
			return wf.NextPage()
		}
		return wf.PrevPage()

	case inputtypes.UpdateTextAction:
		return m.applyText(wf, a.Mode, a.Text)

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			return wf.SetSearchTerm(a.Text)
		case inputtypes.ModeForm:
			if field, ok := m.focusedField(wf); ok {
				wf.SetDraftField(field.Name, a.Text)
			}
			return wf.SubmitDraft()
		case inputtypes.ModeRent:
			return m.films.ConfirmRent(a.Text)
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeSearch {
			m.state.SetCursor(0, 0)
			return wf.SetSearchTerm("")
		}
		return wf.CloseModal()

	case inputtypes.FocusFieldAction:
		draft, ok := draftOf(wf.Modal())
		if !ok {
			return nil
		}
		m.state.MoveField(a.Delta, draft.Len())
		if field, ok := m.focusedField(wf); ok {
			m.inputHandler.SetText(field.Value)
		}

	case inputtypes.OpenAddAction:
		m.state.FormField = 0
		return wf.OpenAdd()

	case inputtypes.OpenEditAction:
		m.state.FormField = 0
		return m.withSelected(m.customers.OpenEdit, m.films.OpenEdit)

	case inputtypes.OpenViewAction:
		return m.withSelected(m.customers.OpenView, m.films.OpenView)

	case inputtypes.OpenRentAction:
		if m.state.Tab != inputtypes.TabFilms {
			return nil
		}
		return m.withSelected(nil, m.films.OpenRent)

	case inputtypes.CloseModalAction:
		return wf.CloseModal()

	case inputtypes.ShowHistoryAction:
		return m.showHistory()

	case inputtypes.DeleteAction:
		return m.withSelected(
			func(c domain.Customer) tea.Cmd { return wf.DeleteEntity(c.ID) },
			func(f domain.Film) tea.Cmd { return wf.DeleteEntity(f.ID) },
		)

	case inputtypes.ConfirmDeleteAction:
		return wf.ConfirmDelete()

	case inputtypes.CancelDeleteAction:
		return wf.CancelDelete()
	}

	return nil
}

func (m *Model) applyText(wf listWorkflow, mode inputtypes.Mode, text string) tea.Cmd {
	switch mode {
	case inputtypes.ModeSearch:
		if text != wf.Query().SearchTerm {
			m.state.SetCursor(0, 0)
		}
		return wf.SetSearchTerm(text)
	case inputtypes.ModeForm:
		if field, ok := m.focusedField(wf); ok {
			return wf.SetDraftField(field.Name, text)
		}
	case inputtypes.ModeRent:
		return m.films.SetRentCustomer(text)
	}
	return nil
}

// withSelected calls the handler of the current tab with the row under the cursor
func (m *Model) withSelected(onCustomer func(domain.Customer) tea.Cmd, onFilm func(domain.Film) tea.Cmd) tea.Cmd {
	cursor := m.state.Cursor()
	switch m.state.Tab {
	case inputtypes.TabCustomers:
		if c, ok := selected(m.customers.Snapshot().Page.Items, cursor); ok && onCustomer != nil {
			return onCustomer(c)
		}
	case inputtypes.TabFilms:
		if f, ok := selected(m.films.Snapshot().Page.Items, cursor); ok && onFilm != nil {
			return onFilm(f)
		}
	}
	return nil
}

func (m *Model) showHistory() tea.Cmd {
	view, ok := m.customers.Modal().(workflow.ViewModal[domain.Customer])
	if !ok || m.state.Tab != inputtypes.TabCustomers {
		return nil
	}
	switch {
	case view.DetailLoading:
		m.state.SetStatus(state.StatusInfo, "Rental history is still loading")
		return nil
	case view.DetailErr != nil:
		m.state.SetStatus(state.StatusError, "Rental history is unavailable")
		return nil
	case m.pager == nil:
		return nil
	}
	return m.showInPager("rental_history", m.helpRenderer.RenderRentalHistory(view.Entity, view.Detail))
}

// showInPager hands the terminal to the pager until the user quits it
func (m *Model) showInPager(what, content string) tea.Cmd {
	pager, program := m.pager, m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerDoneMsg{what: what, err: err}
	}
}

// syncMode derives the input mode from the active workflow so dialogs opened
// or closed by a result message take the keyboard with them
func (m *Model) syncMode() {
	current := m.inputHandler.CurrentMode()
	want := inputtypes.ModeNormal
	data := ""

	if wf := m.active(); wf != nil {
		if _, pending := wf.PendingDelete(); pending {
			want = inputtypes.ModeDeleteConfirm
		} else {
			switch modal := wf.Modal().(type) {
			case workflow.AddModal, workflow.EditModal:
				want = inputtypes.ModeForm
				if field, ok := m.focusedField(wf); ok {
					data = field.Value
				}
			case workflow.RentModal[domain.Film]:
				want = inputtypes.ModeRent
				data = modal.CustomerID
			case workflow.ViewModal[domain.Customer], workflow.ViewModal[domain.Film]:
				want = inputtypes.ModeView
			default:
				if current == inputtypes.ModeSearch {
					want = inputtypes.ModeSearch
				}
			}
		}
	}

	if want == current {
		return
	}
	if current == inputtypes.ModeForm {
		m.state.FormField = 0
	}
	m.inputHandler.ChangeMode(want, data)
}

func (m *Model) clampCursors() {
	m.state.ClampCursor(inputtypes.TabCustomers, m.rowCount(inputtypes.TabCustomers))
	m.state.ClampCursor(inputtypes.TabFilms, m.rowCount(inputtypes.TabFilms))
}

// updateViewportHeight sizes the list table to the page size or the window, whichever is smaller
func (m *Model) updateViewportHeight() {
	// Header, search line, page line, status, help and padding
	available := m.state.Height - 10
	rows := m.customers.PageSize()
	if n := m.films.PageSize(); n > rows {
		rows = n
	}
	// Table header and its border take two lines
	want := rows + 2
	if available < want {
		want = available
	}
	if want < 3 {
		want = 3
	}
	m.state.ViewportHeight = want
}

// View renders the screen
func (m *Model) View() string {
	if m.state.InPager {
		return ""
	}

	vs := views.ViewState{
		Width:          m.state.Width,
		Height:         m.state.Height,
		ViewportHeight: m.state.ViewportHeight,
		Tab:            m.state.Tab,
		Customers:      m.customers.Snapshot(),
		Films:          m.films.Snapshot(),
		Dashboard:      m.dashboard.Snapshot(),
		Cursor:         m.state.Cursor(),
		FormField:      m.state.FormField,
		InputMode:      m.inputHandler.CurrentMode(),
		StatusMessage:  m.state.StatusMessage,
		StatusKind:     m.state.StatusKind,
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
		vs.Prompt = m.inputHandler.Prompt()
	}

	wf := m.active()
	vs.HelpView = m.help.View(contextKeys{
		keys:      m.keys,
		mode:      vs.InputMode,
		tab:       m.state.Tab,
		canRent:   wf != nil && wf.CanRent(),
		hasDetail: wf != nil && wf.HasDetail(),
	})

	return m.renderer.Render(vs)
}
