package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"rentaldesk/internal/domain"
)

// ListRenderer draws a workflow page as a table
type ListRenderer struct {
	styles *Styles
}

// NewListRenderer creates a new list renderer
func NewListRenderer(styles *Styles) *ListRenderer {
	return &ListRenderer{styles: styles}
}

// flexColumns gives the columns without a fixed width an equal share of what is left
func flexColumns(cols []table.Column, width int) []table.Column {
	fixed, flex := 0, 0
	for _, c := range cols {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flex++
		}
	}
	// Each cell is padded by one column on both sides
	spare := width - fixed - 2*len(cols)
	share := 12
	if flex > 0 && spare/flex > share {
		share = spare / flex
	}
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		if c.Width <= 0 {
			c.Width = share
		}
		out[i] = c
	}
	return out
}

func (lr *ListRenderer) render(cols []table.Column, rows []table.Row, cursor, width, height int) string {
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(flexColumns(cols, width)),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	t.SetStyles(lr.styles.Table)
	if len(rows) > 0 {
		t.SetCursor(cursor)
	}
	return t.View()
}

// Customers renders a page of customers
func (lr *ListRenderer) Customers(items []domain.Customer, cursor, width, height int) string {
	cols := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "First name"},
		{Title: "Last name"},
		{Title: "Email"},
	}
	rows := make([]table.Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, table.Row{strconv.Itoa(c.ID), c.FirstName, c.LastName, c.Email})
	}
	return lr.render(cols, rows, cursor, width, height)
}

// Films renders a page of films
func (lr *ListRenderer) Films(items []domain.Film, cursor, width, height int) string {
	cols := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title"},
		{Title: "Category", Width: 12},
		{Title: "Year", Width: 6},
		{Title: "Rating", Width: 7},
		{Title: "Length", Width: 7},
		{Title: "In stock", Width: 8},
	}
	rows := make([]table.Row, 0, len(items))
	for _, f := range items {
		rows = append(rows, table.Row{
			strconv.Itoa(f.ID),
			f.Title,
			f.Category,
			yearText(f.ReleaseYear),
			f.Rating,
			minutes(f.LengthMinutes),
			strconv.Itoa(f.AvailableCopies),
		})
	}
	return lr.render(cols, rows, cursor, width, height)
}

// PageLine summarizes where the current page sits in the result set
func PageLine(q domain.Query, count, total, totalPages int, hasPrev, hasNext bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d of %d", q.PageIndex, totalPages)
	fmt.Fprintf(&b, " · %d of %d", count, total)
	if q.SearchTerm != "" {
		fmt.Fprintf(&b, " matching %q", q.SearchTerm)
	}
	nav := []string{}
	if hasPrev {
		nav = append(nav, "← prev")
	}
	if hasNext {
		nav = append(nav, "next →")
	}
	if len(nav) > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Join(nav, " "))
	}
	return b.String()
}

func yearText(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func minutes(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d min", n)
}
