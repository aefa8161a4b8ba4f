package ui

import (
	"rentaldesk/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerDoneMsg reports that the external pager exited
type pagerDoneMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line if it still shows the message it was scheduled for
type clearStatusMsg struct {
	message string
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
