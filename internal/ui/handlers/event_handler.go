package handlers

import (
	"fmt"

	apperrors "github.com/goliatone/go-errors"

	"rentaldesk/internal/domain"
	"rentaldesk/internal/eventbus"
	"rentaldesk/internal/ui/state"
)

// EventHandler turns domain events into status line updates
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes one domain event
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FetchFailedEvent:
		what := e.Workflow
		if e.Resource == "rental_history" {
			what = "rental history"
		}
		msg := fmt.Sprintf("Could not load %s: %s", what, describe(e.Err))
		if e.Resource == "rental_history" {
			h.state.SetStatus(state.StatusError, msg)
			break
		}
		h.state.SetFetchError(e.Workflow, msg)

	case eventbus.MutationSucceededEvent:
		h.state.SetStatus(state.StatusSuccess, successText(e))

	case eventbus.MutationRejectedEvent:
		h.state.SetStatus(state.StatusError, e.Message)

	case eventbus.ValidationFailedEvent:
		h.state.SetStatus(state.StatusWarning, e.Message)

	case eventbus.DashboardLoadedEvent:
		if e.Err != nil {
			h.state.SetStatus(state.StatusWarning, "Dashboard incomplete: "+e.Err.Error())
		}

	case eventbus.ConfigLoadedEvent:
		h.state.SetStatus(state.StatusInfo, "Connected to "+e.BaseURL)

	case eventbus.ListLoadedEvent:
		// A successful reload replaces that list's stale load error
		h.state.ClearFetchError(e.Workflow)
	}
}

// describe reports the innermost cause; the wrapping layers only add context
// that is already on screen
func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	root := apperrors.RootCause(err)
	var ae *apperrors.Error
	if apperrors.As(root, &ae) {
		return ae.Message
	}
	return root.Error()
}

func successText(e eventbus.MutationSucceededEvent) string {
	noun := singular(e.Workflow)
	switch e.Op {
	case domain.OpCreate:
		return fmt.Sprintf("%s added", noun)
	case domain.OpUpdate:
		return fmt.Sprintf("%s %d saved", noun, e.ID)
	case domain.OpDelete:
		return fmt.Sprintf("%s %d deleted", noun, e.ID)
	case domain.OpRent:
		return fmt.Sprintf("Film %d rented", e.ID)
	default:
		return "Done"
	}
}

func singular(workflowName string) string {
	switch workflowName {
	case "customers":
		return "Customer"
	case "films":
		return "Film"
	default:
		return "Record"
	}
}
