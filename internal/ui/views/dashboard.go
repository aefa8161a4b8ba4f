package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rentaldesk/internal/dashboard"
)

// DashboardRenderer draws the landing screen
type DashboardRenderer struct {
	styles *Styles
}

// NewDashboardRenderer creates a new dashboard renderer
func NewDashboardRenderer(styles *Styles) *DashboardRenderer {
	return &DashboardRenderer{styles: styles}
}

// Render draws the top films and top actors side by side when there is room
func (dr *DashboardRenderer) Render(snap dashboard.Snapshot, width int) string {
	if !snap.Loaded {
		return dr.styles.StatusLoading.Render("Loading dashboard...")
	}

	colWidth := (width - 4) / 2
	if colWidth < 30 {
		return dr.movies(snap, width) + "\n\n" + dr.actors(snap, width)
	}
	left := lipgloss.NewStyle().Width(colWidth).Render(dr.movies(snap, colWidth))
	right := lipgloss.NewStyle().Width(colWidth).Render(dr.actors(snap, colWidth))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

func (dr *DashboardRenderer) movies(snap dashboard.Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(dr.styles.Section.Render("Top rented films"))
	b.WriteString("\n")

	if snap.MoviesErr != nil && len(snap.Movies) == 0 {
		b.WriteString(dr.styles.StatusError.Render("Could not load top films"))
		return b.String()
	}
	if len(snap.Movies) == 0 {
		b.WriteString(dr.styles.Dim.Render("No rentals yet"))
		return b.String()
	}
	for i, f := range snap.Movies {
		title := fmt.Sprintf("%d. %s", i+1, f.Title)
		if f.ReleaseYear > 0 {
			title += fmt.Sprintf(" (%d)", f.ReleaseYear)
		}
		b.WriteString(truncate(title, width))
		b.WriteString("\n")
		meta := fmt.Sprintf("   %d rentals", f.RentedCount)
		if f.Rating != "" {
			meta += " · " + lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(f.Rating))).Render(f.Rating)
		}
		b.WriteString(dr.styles.Dim.Render(meta))
		b.WriteString("\n")
	}
	if snap.MoviesErr != nil {
		b.WriteString(dr.styles.StatusWarning.Render("(showing previous results)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (dr *DashboardRenderer) actors(snap dashboard.Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(dr.styles.Section.Render("Top actors"))
	b.WriteString("\n")

	if snap.ActorsErr != nil && len(snap.Actors) == 0 {
		b.WriteString(dr.styles.StatusError.Render("Could not load top actors"))
		return b.String()
	}
	if len(snap.Actors) == 0 {
		b.WriteString(dr.styles.Dim.Render("No rentals yet"))
		return b.String()
	}
	for i, a := range snap.Actors {
		b.WriteString(truncate(fmt.Sprintf("%d. %s %s", i+1, a.FirstName, a.LastName), width))
		b.WriteString("\n")
		for _, f := range a.TopFilms {
			b.WriteString(dr.styles.Dim.Render(truncate(fmt.Sprintf("   %s (%d)", f.Title, f.RentalCount), width)))
			b.WriteString("\n")
		}
	}
	if snap.ActorsErr != nil {
		b.WriteString(dr.styles.StatusWarning.Render("(showing previous results)"))
	}
	return strings.TrimRight(b.String(), "\n")
}
