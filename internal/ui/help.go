package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"rentaldesk/internal/domain"
	"rentaldesk/internal/ui/views"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	helpKeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpDescStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// RenderHelpContent generates the help page shown in the pager
func (r *HelpRenderer) RenderHelpContent(keys KeyMap) string {
	var help strings.Builder

	help.WriteString(helpTitleStyle.Render("rentaldesk help"))
	help.WriteString("\n")

	section := func(title string, bindings ...key.Binding) {
		help.WriteString(helpSectionStyle.Render(title))
		help.WriteString("\n")
		for _, b := range bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)), helpDescStyle.Render(h.Desc)))
		}
	}

	section("Navigation", keys.Up, keys.Down, keys.PrevPage, keys.NextPage, keys.Tabs)
	section("Records", keys.Search, keys.Add, keys.Edit, keys.View, keys.Delete)
	section("Films", keys.Rent)
	section("Customers", keys.History)
	section("Dialogs", keys.NextField, keys.PrevField, keys.Submit, keys.Cancel, keys.Confirm, keys.Deny)
	section("Other", keys.Refresh, keys.Help, keys.Quit)

	return help.String()
}

// RenderRentalHistory generates the full rental history page of a customer
func (r *HelpRenderer) RenderRentalHistory(c domain.Customer, rentals []domain.Rental) string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render(fmt.Sprintf("Rental history of %s (#%d)", c.FullName(), c.ID)))
	b.WriteString("\n")
	if len(rentals) == 0 {
		b.WriteString("No rentals\n")
		return b.String()
	}
	for _, line := range views.RentalLines(rentals, 0, 0) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n%d rentals\n", len(rentals)))
	return b.String()
}

// Pager shows long text outside the main screen
type Pager interface {
	Show(content string) error
}

// OvPager pages content with ov while the Bubble Tea program has released the terminal
type OvPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOvPager creates a pager bound to program
func NewOvPager(program *tea.Program) *OvPager {
	return &OvPager{program: program}
}

// Show runs ov on content and returns once the user quits it
func (p *OvPager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write the page back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
