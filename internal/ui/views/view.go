package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rentaldesk/internal/dashboard"
	"rentaldesk/internal/domain"
	"rentaldesk/internal/ui/input/types"
	"rentaldesk/internal/ui/state"
	"rentaldesk/internal/workflow"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	ViewportHeight int
	Tab            types.Tab
	Customers      workflow.Snapshot[domain.Customer]
	Films          workflow.Snapshot[domain.Film]
	Dashboard      dashboard.Snapshot
	Cursor         int
	FormField      int
	InputMode      types.Mode
	TextInput      string // rendered text field of the active text mode
	Prompt         string // label of the active text mode
	StatusMessage  string
	StatusKind     state.StatusKind
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	list   *ListRenderer
	dash   *DashboardRenderer
	modals *ModalRenderer
	popup  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles: styles,
		list:   NewListRenderer(styles),
		dash:   NewDashboardRenderer(styles),
		modals: NewModalRenderer(styles),
		popup:  NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	width := vs.Width
	if width <= 0 {
		width = 80
	}
	height := vs.Height
	if height <= 0 {
		height = 24
	}
	inner := width - 4 // Main padding

	content := &strings.Builder{}
	content.WriteString(r.header(vs.Tab))
	content.WriteString("\n\n")

	switch vs.Tab {
	case types.TabHome:
		content.WriteString(r.dash.Render(vs.Dashboard, inner))
	case types.TabCustomers:
		s := vs.Customers
		r.listHeader(content, vs, s.Query, s.Loaded, s.FetchErr)
		content.WriteString(r.list.Customers(s.Page.Items, vs.Cursor, inner, vs.ViewportHeight))
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render(PageLine(s.Query, len(s.Page.Items), s.Page.TotalCount, s.TotalPages, s.HasPrev, s.HasNext)))
	case types.TabFilms:
		s := vs.Films
		r.listHeader(content, vs, s.Query, s.Loaded, s.FetchErr)
		content.WriteString(r.list.Films(s.Page.Items, vs.Cursor, inner, vs.ViewportHeight))
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render(PageLine(s.Query, len(s.Page.Items), s.Page.TotalCount, s.TotalPages, s.HasPrev, s.HasNext)))
	}

	// Push status and help to the bottom
	footer := r.footer(vs, inner)
	used := strings.Count(content.String(), "\n") + 1
	if pad := height - 2 - used - lipgloss.Height(footer); pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	finalContent := r.styles.Main.MaxHeight(height).Render(content.String())

	popup, style, ok := r.popupContent(vs, inner)
	if !ok {
		return finalContent
	}
	return r.popup.RenderPopupOverlay(finalContent, popup, height, width, style)
}

func (r *Renderer) header(active types.Tab) string {
	tabs := []string{r.styles.Title.Render("rentaldesk"), " "}
	for i, t := range []types.Tab{types.TabHome, types.TabCustomers, types.TabFilms} {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			tabs = append(tabs, r.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *Renderer) listHeader(b *strings.Builder, vs ViewState, q domain.Query, loaded bool, fetchErr error) {
	switch {
	case vs.InputMode == types.ModeSearch:
		b.WriteString(r.styles.Search.Render(vs.Prompt) + vs.TextInput)
	case q.SearchTerm != "":
		b.WriteString(r.styles.Search.Render(fmt.Sprintf("[Search: %s]", q.SearchTerm)))
	default:
		b.WriteString(r.styles.Dim.Render("/ to search"))
	}
	switch {
	case fetchErr != nil:
		b.WriteString("  " + r.styles.StatusError.Render("load failed, r to retry"))
	case !loaded:
		b.WriteString("  " + r.styles.StatusLoading.Render("Loading..."))
	}
	b.WriteString("\n")
}

func (r *Renderer) footer(vs ViewState, width int) string {
	status := ""
	if vs.StatusMessage != "" {
		msg := truncate(vs.StatusMessage, width)
		switch vs.StatusKind {
		case state.StatusError:
			status = r.styles.StatusError.Render(msg)
		case state.StatusWarning:
			status = r.styles.StatusWarning.Render(msg)
		case state.StatusSuccess:
			status = r.styles.StatusSuccess.Render(msg)
		default:
			status = r.styles.Status.Render(msg)
		}
	}
	help := vs.HelpView
	if help == "" {
		help = r.styles.Help.Render("Press ? for help")
	}
	return status + "\n" + help
}

// popupContent picks the dialog of the active tab, if one is open
func (r *Renderer) popupContent(vs ViewState, width int) (string, lipgloss.Style, bool) {
	switch vs.Tab {
	case types.TabCustomers:
		s := vs.Customers
		if s.PendingDelete != nil {
			return r.modals.Confirm("customer", *s.PendingDelete), r.styles.ConfirmPopup, true
		}
		switch m := s.Modal.(type) {
		case workflow.AddModal:
			return r.modals.Form("Add customer", m.Draft, vs.FormField, vs.TextInput, s.ModalErr, s.Busy), r.styles.Popup, true
		case workflow.EditModal:
			return r.modals.Form(fmt.Sprintf("Edit customer #%d", m.OriginalID), m.Draft, vs.FormField, vs.TextInput, s.ModalErr, s.Busy), r.styles.Popup, true
		case workflow.ViewModal[domain.Customer]:
			return r.modals.CustomerView(m, width*2/3), r.styles.Popup, true
		}
	case types.TabFilms:
		s := vs.Films
		if s.PendingDelete != nil {
			return r.modals.Confirm("film", *s.PendingDelete), r.styles.ConfirmPopup, true
		}
		switch m := s.Modal.(type) {
		case workflow.AddModal:
			return r.modals.Form("Add film", m.Draft, vs.FormField, vs.TextInput, s.ModalErr, s.Busy), r.styles.Popup, true
		case workflow.EditModal:
			return r.modals.Form(fmt.Sprintf("Edit film #%d", m.OriginalID), m.Draft, vs.FormField, vs.TextInput, s.ModalErr, s.Busy), r.styles.Popup, true
		case workflow.ViewModal[domain.Film]:
			return r.modals.FilmView(m, width*2/3), r.styles.Popup, true
		case workflow.RentModal[domain.Film]:
			return r.modals.Rent(m.Film, vs.Prompt, vs.TextInput, s.ModalErr, s.Busy), r.styles.Popup, true
		}
	}
	return "", lipgloss.Style{}, false
}
