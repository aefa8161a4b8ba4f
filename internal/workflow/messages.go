package workflow

import (
	"rentaldesk/internal/domain"
)

// Result messages produced by workflow commands. Every message carries the
// workflow name so several workflows can share one Update loop.

type listResultMsg[T domain.Entity] struct {
	workflow string
	gen      uint64
	query    domain.Query
	page     domain.Page[T]
	err      error
}

type searchDebounceMsg struct {
	workflow string
	gen      uint64
}

type mutationResultMsg struct {
	workflow string
	op       string
	id       int
	message  string // optional server text, e.g. the rent endpoint's "message"
	err      error
}

type detailResultMsg struct {
	workflow string
	gen      uint64
	entityID int
	rentals  []domain.Rental
	err      error
}
