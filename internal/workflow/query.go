package workflow

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// Query returns the current search term and page index
func (w *Workflow[T]) Query() domain.Query {
	return w.query
}

// SetSearchTerm replaces the search term and returns to the first page.
// Returns nil when nothing changed.
func (w *Workflow[T]) SetSearchTerm(term string) tea.Cmd {
	if term == w.query.SearchTerm && w.query.PageIndex == 1 {
		return nil
	}
	w.query = domain.Query{SearchTerm: term, PageIndex: 1}

	if w.debounce <= 0 {
		return w.fetch()
	}

	w.debounceGen++
	gen, name := w.debounceGen, w.name
	return tea.Tick(w.debounce, func(_ time.Time) tea.Msg {
		return searchDebounceMsg{workflow: name, gen: gen}
	})
}

// SetPageIndex moves to page n. Pages before 1 are rejected; moving forward
// requires either a known total that covers n or, without exact paging, a
// full current page.
func (w *Workflow[T]) SetPageIndex(n int) tea.Cmd {
	if n < 1 || n == w.query.PageIndex {
		return nil
	}
	if n > w.query.PageIndex && !w.canAdvanceTo(n) {
		w.logger().Debugw("page change rejected", "page", n, "current", w.query.PageIndex,
			"items", len(w.page.Items), "total", w.page.TotalCount)
		return nil
	}
	w.query.PageIndex = n
	return w.fetch()
}

// NextPage moves forward one page when HasNext allows it
func (w *Workflow[T]) NextPage() tea.Cmd {
	if !w.HasNext() {
		return nil
	}
	return w.SetPageIndex(w.query.PageIndex + 1)
}

// PrevPage moves back one page
func (w *Workflow[T]) PrevPage() tea.Cmd {
	return w.SetPageIndex(w.query.PageIndex - 1)
}

// HasNext reports whether a further page is expected. Exact paging compares
// the page index to the total; otherwise a short page marks the last one.
func (w *Workflow[T]) HasNext() bool {
	if !w.loaded {
		return false
	}
	if w.exactPaging {
		return w.query.PageIndex < w.TotalPages()
	}
	return len(w.page.Items) == w.pageSize
}

// HasPrev reports whether there is a page before the current one
func (w *Workflow[T]) HasPrev() bool {
	return w.query.PageIndex > 1
}

// TotalPages returns ceil(total/pageSize), at least 1
func (w *Workflow[T]) TotalPages() int {
	return w.page.TotalPages(w.pageSize)
}

func (w *Workflow[T]) canAdvanceTo(n int) bool {
	if !w.loaded {
		return false
	}
	withinTotal := w.page.TotalCount > 0 && n <= w.TotalPages()
	if w.exactPaging {
		return withinTotal
	}
	return len(w.page.Items) == w.pageSize || withinTotal
}
