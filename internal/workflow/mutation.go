package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// DefaultRentFailure is shown when the server refuses a rental without a message
const DefaultRentFailure = "Rental failed"

// SubmitDraft commits the Add or Edit draft: create for Add, update keyed by
// the original id for Edit. Blank required fields or unparsable values stop
// the request with a validation error.
func (w *Workflow[T]) SubmitDraft() tea.Cmd {
	if w.busy {
		return nil
	}

	var (
		op    string
		id    int
		draft Draft
	)
	switch m := w.modal.(type) {
	case AddModal:
		op, draft = domain.OpCreate, m.Draft
	case EditModal:
		op, id, draft = domain.OpUpdate, m.OriginalID, m.Draft
	default:
		w.logger().Warnw("submit without a draft", "modal", w.modal.Kind())
		return nil
	}

	if missing := draft.Missing(); len(missing) > 0 {
		w.rejectInput(op, "Required: "+strings.Join(missing, ", "))
		return nil
	}
	entity, err := w.schema.Build(draft, id)
	if err != nil {
		w.rejectInput(op, err.Error())
		return nil
	}

	source := w.source
	if op == domain.OpCreate {
		return w.mutate(op, id, func(ctx context.Context) (string, error) {
			return "", source.Create(ctx, entity)
		})
	}
	return w.mutate(op, id, func(ctx context.Context) (string, error) {
		return "", source.Update(ctx, entity)
	})
}

// DeleteEntity asks for confirmation before deleting id. Nothing is sent
// until ConfirmDelete.
func (w *Workflow[T]) DeleteEntity(id int) tea.Cmd {
	if w.busy || w.modal.Kind() != ModalClosed {
		return nil
	}
	w.pendingDelete = &id
	w.modalErr = nil
	return nil
}

// ConfirmDelete sends the pending delete
func (w *Workflow[T]) ConfirmDelete() tea.Cmd {
	if w.pendingDelete == nil || w.busy {
		return nil
	}
	id := *w.pendingDelete
	w.pendingDelete = nil

	source := w.source
	return w.mutate(domain.OpDelete, id, func(ctx context.Context) (string, error) {
		return "", source.Delete(ctx, id)
	})
}

// PendingDelete returns the id awaiting confirmation
func (w *Workflow[T]) PendingDelete() (int, bool) {
	if w.pendingDelete == nil {
		return 0, false
	}
	return *w.pendingDelete, true
}

// CancelDelete drops the pending delete
func (w *Workflow[T]) CancelDelete() tea.Cmd {
	w.pendingDelete = nil
	return nil
}

// ConfirmRent rents the film in the Rent dialog to customerID. A blank or
// non-numeric id is rejected locally and the dialog stays open.
func (w *Workflow[T]) ConfirmRent(customerID string) tea.Cmd {
	m, ok := w.modal.(RentModal[T])
	if !ok || w.renter == nil || w.busy {
		return nil
	}
	m.CustomerID = customerID
	w.modal = m

	filmID := m.Film.EntityID()
	trimmed := strings.TrimSpace(customerID)
	if trimmed == "" {
		w.rejectInput(domain.OpRent, "Please enter a customer ID")
		return nil
	}
	cid, err := strconv.Atoi(trimmed)
	if err != nil || cid <= 0 {
		w.rejectInput(domain.OpRent, fmt.Sprintf("Customer ID must be a positive number, got %q", trimmed))
		return nil
	}

	renter := w.renter
	return w.mutate(domain.OpRent, filmID, func(ctx context.Context) (string, error) {
		result, err := renter.Rent(ctx, filmID, cid)
		if err != nil {
			return result.Message, err
		}
		if !result.Success {
			return result.Message, errRentRefused
		}
		return result.Message, nil
	})
}

var errRentRefused = errors.New("rent refused")

// mutate marks the workflow busy and runs call off the Update loop
func (w *Workflow[T]) mutate(op string, id int, call func(ctx context.Context) (string, error)) tea.Cmd {
	w.busy = true
	w.modalErr = nil
	w.logger().Infow("mutation started", "op", op, "id", id)

	name, timeout := w.name, w.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		message, err := call(ctx)
		return mutationResultMsg{workflow: name, op: op, id: id, message: message, err: err}
	}
}

func (w *Workflow[T]) applyMutation(msg mutationResultMsg) tea.Cmd {
	log := w.logger()
	w.busy = false

	if msg.err != nil {
		text := rejectionText(msg)
		err := mutationRejected(w.name, msg.op, msg.id, text, causeOf(msg.err))
		// With no dialog open the rejection is only reported through the event
		if w.modal.Kind() != ModalClosed {
			w.modalErr = err
		}
		log.Warnw("mutation rejected", "op", msg.op, "id", msg.id, "message", text, "error", msg.err)
		w.notifier.Publish(domain.MutationRejectedEvent{
			Workflow: w.name, Op: msg.op, ID: msg.id, Message: text, Err: err,
		})
		return nil
	}

	if msg.op != domain.OpDelete {
		w.CloseModal()
	}
	w.modalErr = nil
	log.Infow("mutation succeeded", "op", msg.op, "id", msg.id)
	w.notifier.Publish(domain.MutationSucceededEvent{Workflow: w.name, Op: msg.op, ID: msg.id})
	return w.fetch()
}

// rejectInput surfaces a client-side validation failure without contacting the server
func (w *Workflow[T]) rejectInput(op, message string) {
	w.modalErr = validationFailed(w.name, op, message)
	w.logger().Infow("validation failed", "op", op, "message", message)
	w.notifier.Publish(domain.ValidationFailedEvent{Workflow: w.name, Op: op, Message: message})
}

// rejectionText is the message shown for a refused mutation: the server's own
// text when it sent one, else a default per operation
func rejectionText(msg mutationResultMsg) string {
	if msg.message != "" {
		return msg.message
	}
	if text := serverMessage(msg.err); text != "" {
		return text
	}
	switch msg.op {
	case domain.OpRent:
		return DefaultRentFailure
	case domain.OpCreate:
		return "Could not create the record"
	case domain.OpUpdate:
		return "Could not save changes"
	case domain.OpDelete:
		return "Could not delete the record"
	default:
		return "Request failed"
	}
}

func causeOf(err error) error {
	if errors.Is(err, errRentRefused) {
		return nil
	}
	return err
}
