package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rentaldesk/internal/domain"
	"rentaldesk/internal/workflow"
)

// ModalRenderer builds the contents of the dialog popups
type ModalRenderer struct {
	styles *Styles
}

// NewModalRenderer creates a new modal renderer
func NewModalRenderer(styles *Styles) *ModalRenderer {
	return &ModalRenderer{styles: styles}
}

// Form renders an Add or Edit dialog. input is the live text field of the focused row.
func (mr *ModalRenderer) Form(title string, draft workflow.Draft, focused int, input string, modalErr error, busy bool) string {
	var b strings.Builder
	b.WriteString(mr.styles.Title.Render(title))
	b.WriteString("\n\n")

	fields := draft.Fields()
	labelWidth := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Label); w > labelWidth {
			labelWidth = w
		}
	}

	for i, f := range fields {
		marker := "  "
		label := mr.styles.Label.Render(padRight(f.Label, labelWidth))
		if i == focused {
			marker = mr.styles.FieldFocused.Render("▸ ")
			label = mr.styles.FieldFocused.Render(padRight(f.Label, labelWidth))
		}
		req := " "
		if f.Required {
			req = mr.styles.Required.Render("*")
		}
		value := f.Value
		if i == focused {
			value = input
		}
		fmt.Fprintf(&b, "%s%s%s  %s\n", marker, label, req, value)
	}

	mr.footer(&b, modalErr, busy, "Saving...", "tab/↑↓ move · enter save · esc cancel")
	return b.String()
}

// Rent renders the Rent dialog for film
func (mr *ModalRenderer) Rent(film domain.Film, prompt, input string, modalErr error, busy bool) string {
	var b strings.Builder
	b.WriteString(mr.styles.Title.Render("Rent film"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", mr.styles.Highlight.Render(film.Title))
	fmt.Fprintf(&b, "%s\n\n", mr.styles.Dim.Render(fmt.Sprintf("#%d · %d in stock", film.ID, film.AvailableCopies)))
	fmt.Fprintf(&b, "%s%s\n", prompt, input)

	mr.footer(&b, modalErr, busy, "Renting...", "enter rent · esc cancel")
	return b.String()
}

// Confirm renders the delete confirmation
func (mr *ModalRenderer) Confirm(noun string, id int) string {
	return mr.styles.Highlight.Render(fmt.Sprintf("Delete %s #%d?", noun, id)) +
		"\n\n" + mr.styles.Help.Render("y delete · n cancel")
}

// CustomerView renders a customer's View dialog including the rental history
func (mr *ModalRenderer) CustomerView(m workflow.ViewModal[domain.Customer], width int) string {
	c := m.Entity
	var b strings.Builder
	b.WriteString(mr.styles.Title.Render(c.FullName()))
	b.WriteString("\n\n")
	mr.row(&b, "ID", domain.FormatID(c.ID))
	mr.row(&b, "Email", c.Email)
	b.WriteString("\n")
	b.WriteString(mr.styles.Section.Render("Rental history"))
	b.WriteString("\n")

	switch {
	case m.DetailLoading:
		b.WriteString(mr.styles.StatusLoading.Render("Loading..."))
		b.WriteString("\n")
	case m.DetailErr != nil:
		b.WriteString(mr.styles.StatusError.Render("Could not load rental history"))
		b.WriteString("\n")
	case len(m.Detail) == 0:
		b.WriteString(mr.styles.Dim.Render("No rentals"))
		b.WriteString("\n")
	default:
		for _, line := range RentalLines(m.Detail, width, 8) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.Detail) > 8 {
			b.WriteString(mr.styles.Dim.Render(fmt.Sprintf("... %d more, press H for all", len(m.Detail)-8)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mr.styles.Help.Render("H full history · esc close"))
	return b.String()
}

// FilmView renders a film's View dialog
func (mr *ModalRenderer) FilmView(m workflow.ViewModal[domain.Film], width int) string {
	f := m.Entity
	var b strings.Builder
	b.WriteString(mr.styles.Title.Render(f.Title))
	b.WriteString("\n\n")
	mr.row(&b, "ID", domain.FormatID(f.ID))
	mr.row(&b, "Category", f.Category)
	mr.row(&b, "Released", yearText(f.ReleaseYear))
	if f.Rating != "" {
		mr.row(&b, "Rating", lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(f.Rating))).Render(f.Rating))
	}
	mr.row(&b, "Length", minutes(f.LengthMinutes))
	mr.row(&b, "Cost", fmt.Sprintf("$%.2f", f.ReplacementCost))
	mr.row(&b, "In stock", fmt.Sprintf("%d", f.AvailableCopies))
	if len(f.FeaturedActors) > 0 {
		mr.row(&b, "Actors", strings.Join(f.FeaturedActors, ", "))
	}
	if f.Description != "" {
		b.WriteString("\n")
		wrap := width - 12
		if wrap < 20 {
			wrap = 20
		}
		b.WriteString(lipgloss.NewStyle().Width(wrap).Render(f.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mr.styles.Help.Render("esc close"))
	return b.String()
}

// RentalLines formats up to limit rentals, one per line. limit <= 0 means all.
func RentalLines(rentals []domain.Rental, width, limit int) []string {
	if limit <= 0 || limit > len(rentals) {
		limit = len(rentals)
	}
	lines := make([]string, 0, limit)
	for _, r := range rentals[:limit] {
		returned := "not returned"
		if r.ReturnDate != nil && *r.ReturnDate != "" {
			returned = "returned " + *r.ReturnDate
		} else if r.Returned {
			returned = "returned"
		}
		line := fmt.Sprintf("%-10s %s · %s", r.RentalDate, r.Title, returned)
		if width > 0 {
			line = truncate(line, width)
		}
		lines = append(lines, line)
	}
	return lines
}

func (mr *ModalRenderer) row(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", mr.styles.Dim.Render(padRight(label, 9)), value)
}

func (mr *ModalRenderer) footer(b *strings.Builder, modalErr error, busy bool, busyText, hints string) {
	b.WriteString("\n")
	switch {
	case busy:
		b.WriteString(mr.styles.StatusLoading.Render(busyText))
		b.WriteString("\n")
	case modalErr != nil:
		b.WriteString(mr.styles.StatusError.Render(workflow.Message(modalErr)))
		b.WriteString("\n")
	}
	b.WriteString(mr.styles.Help.Render(hints))
}
