package workflow

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// Refresh re-fetches the current page
func (w *Workflow[T]) Refresh() tea.Cmd {
	return w.fetch()
}

// fetch issues a list request for the current query. Each request gets a new
// generation; only the response to the latest one is applied. A pending
// debounced search is superseded.
func (w *Workflow[T]) fetch() tea.Cmd {
	w.listGen++
	w.debounceGen++

	gen, q := w.listGen, w.query
	name, source, limit, timeout := w.name, w.source, w.pageSize, w.timeout

	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		page, err := source.List(ctx, q, limit)
		return listResultMsg[T]{workflow: name, gen: gen, query: q, page: page, err: err}
	}
}

func (w *Workflow[T]) applyList(msg listResultMsg[T]) tea.Cmd {
	log := w.logger()

	if msg.gen != w.listGen {
		log.Debugw("discarding stale list response", "gen", msg.gen, "latest", w.listGen,
			"search", msg.query.SearchTerm, "page", msg.query.PageIndex)
		return nil
	}

	if msg.err != nil {
		w.fetchErr = fetchFailed(w.name, "list", msg.err)
		log.Errorw("list fetch failed", "search", msg.query.SearchTerm, "page", msg.query.PageIndex, "error", msg.err)
		w.notifier.Publish(domain.FetchFailedEvent{Workflow: w.name, Resource: "list", Err: w.fetchErr})
		return nil
	}

	page := msg.page
	if page.Items == nil {
		page.Items = []T{}
	}
	if len(page.Items) > w.pageSize {
		log.Warnw("server returned more rows than requested", "limit", w.pageSize, "items", len(page.Items))
	}
	if page.TotalCount < len(page.Items) {
		page.TotalCount = len(page.Items)
	}

	w.page = page
	w.loaded = true
	w.fetchErr = nil

	w.notifier.Publish(domain.ListLoadedEvent{
		Workflow:   w.name,
		Query:      msg.query,
		Count:      len(page.Items),
		TotalCount: page.TotalCount,
	})
	return nil
}
