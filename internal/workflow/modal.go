package workflow

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// ModalKind names the dialog a workflow has open
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalAdd
	ModalEdit
	ModalView
	ModalRent
)

func (k ModalKind) String() string {
	switch k {
	case ModalClosed:
		return "closed"
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalView:
		return "view"
	case ModalRent:
		return "rent"
	default:
		return "unknown"
	}
}

// Modal is the single dialog state of a workflow. The concrete types below are
// the only implementations.
type Modal interface {
	Kind() ModalKind
	sealed()
}

// Closed means no dialog is open
type Closed struct{}

// AddModal edits a draft for a new entity
type AddModal struct {
	Draft Draft
}

// EditModal edits a draft of an existing entity
type EditModal struct {
	Draft      Draft
	OriginalID int
}

// ViewModal shows one entity and, for workflows with a detail loader, its rental history
type ViewModal[T domain.Entity] struct {
	Entity        T
	Detail        []domain.Rental
	DetailLoading bool
	DetailErr     error
}

// RentModal collects the customer a film is rented to
type RentModal[T domain.Entity] struct {
	Film       T
	CustomerID string
}

func (Closed) Kind() ModalKind       { return ModalClosed }
func (AddModal) Kind() ModalKind     { return ModalAdd }
func (EditModal) Kind() ModalKind    { return ModalEdit }
func (ViewModal[T]) Kind() ModalKind { return ModalView }
func (RentModal[T]) Kind() ModalKind { return ModalRent }

func (Closed) sealed()       {}
func (AddModal) sealed()     {}
func (EditModal) sealed()    {}
func (ViewModal[T]) sealed() {}
func (RentModal[T]) sealed() {}

func cloneModal(m Modal) Modal {
	if v, ok := m.(interface{ clone() Modal }); ok {
		return v.clone()
	}
	return m
}

func (m ViewModal[T]) clone() Modal {
	if m.Detail != nil {
		m.Detail = append([]domain.Rental(nil), m.Detail...)
	}
	return m
}

// Modal returns the open dialog
func (w *Workflow[T]) Modal() Modal {
	return cloneModal(w.modal)
}

// open moves from Closed to the target dialog. Any other starting state, a
// pending delete confirmation or an in-flight mutation rejects the transition.
func (w *Workflow[T]) open(to Modal) error {
	from := w.modal.Kind()
	if from != ModalClosed || w.pendingDelete != nil || w.busy {
		err := invalidTransition(w.name, from, to.Kind())
		w.logger().Warnw("modal transition rejected", "from", from, "to", to.Kind(),
			"pending_delete", w.pendingDelete != nil, "busy", w.busy)
		return err
	}
	w.modal = to
	w.modalErr = nil
	return nil
}

// OpenAdd opens the Add dialog with an empty draft
func (w *Workflow[T]) OpenAdd() tea.Cmd {
	_ = w.open(AddModal{Draft: w.schema.Blank()})
	return nil
}

// OpenEdit opens the Edit dialog with a field-wise copy of entity
func (w *Workflow[T]) OpenEdit(entity T) tea.Cmd {
	_ = w.open(EditModal{Draft: w.schema.Draft(entity), OriginalID: entity.EntityID()})
	return nil
}

// OpenView opens the View dialog for entity and starts loading its detail when configured
func (w *Workflow[T]) OpenView(entity T) tea.Cmd {
	if err := w.open(ViewModal[T]{Entity: entity, DetailLoading: w.history != nil}); err != nil {
		return nil
	}
	return w.loadRentalHistory(entity.EntityID())
}

// OpenRent opens the Rent dialog for a film with a blank customer id
func (w *Workflow[T]) OpenRent(film T) tea.Cmd {
	if w.renter == nil {
		w.logger().Warnw("rent is not available", "film_id", film.EntityID())
		return nil
	}
	_ = w.open(RentModal[T]{Film: film})
	return nil
}

// CloseModal returns to Closed, discarding any draft, detail and surfaced error
func (w *Workflow[T]) CloseModal() tea.Cmd {
	if w.modal.Kind() == ModalView {
		w.detailGen++
	}
	w.modal = Closed{}
	w.modalErr = nil
	return nil
}

// SetDraftField edits one field of the Add or Edit draft
func (w *Workflow[T]) SetDraftField(name, value string) tea.Cmd {
	switch m := w.modal.(type) {
	case AddModal:
		m.Draft = m.Draft.With(name, value)
		w.modal = m
	case EditModal:
		m.Draft = m.Draft.With(name, value)
		w.modal = m
	}
	return nil
}

// SetRentCustomer edits the customer id typed into the Rent dialog
func (w *Workflow[T]) SetRentCustomer(customerID string) tea.Cmd {
	if m, ok := w.modal.(RentModal[T]); ok {
		m.CustomerID = customerID
		w.modal = m
	}
	return nil
}
