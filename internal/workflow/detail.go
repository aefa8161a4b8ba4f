package workflow

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// loadRentalHistory fetches the rental history of the customer in the open View dialog
func (w *Workflow[T]) loadRentalHistory(customerID int) tea.Cmd {
	if w.history == nil {
		return nil
	}
	w.detailGen++

	gen, name, history, timeout := w.detailGen, w.name, w.history, w.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		rentals, err := history.RentalHistory(ctx, customerID)
		return detailResultMsg{workflow: name, gen: gen, entityID: customerID, rentals: rentals, err: err}
	}
}

// applyDetail stores a rental history result if the View it was loaded for is still open
func (w *Workflow[T]) applyDetail(msg detailResultMsg) {
	log := w.logger()

	view, ok := w.modal.(ViewModal[T])
	if msg.gen != w.detailGen || !ok || view.Entity.EntityID() != msg.entityID {
		log.Debugw("discarding rental history for a closed view", "customer_id", msg.entityID)
		return
	}

	view.DetailLoading = false
	if msg.err != nil {
		view.Detail = []domain.Rental{}
		view.DetailErr = fetchFailed(w.name, "rental_history", msg.err)
		log.Errorw("rental history fetch failed", "customer_id", msg.entityID, "error", msg.err)
		w.notifier.Publish(domain.FetchFailedEvent{Workflow: w.name, Resource: "rental_history", Err: view.DetailErr})
	} else {
		view.Detail = msg.rentals
		if view.Detail == nil {
			view.Detail = []domain.Rental{}
		}
		view.DetailErr = nil
	}
	w.modal = view
}
