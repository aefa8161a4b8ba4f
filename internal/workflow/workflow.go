// Package workflow is the view-state engine behind the customer and film
// screens. A Workflow owns the search query, the current page, the open dialog
// and the in-flight mutation, and reconciles them with the API through
// Bubble Tea commands. All state changes happen on the Update loop.
package workflow

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rentaldesk/internal/domain"
)

// Source is the list and CRUD API of one entity kind
type Source[T domain.Entity] interface {
	List(ctx context.Context, q domain.Query, limit int) (domain.Page[T], error)
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id int) error
}

// HistoryLoader fetches the rental history shown in a customer's View dialog
type HistoryLoader interface {
	RentalHistory(ctx context.Context, customerID int) ([]domain.Rental, error)
}

// Renter performs the rent transaction
type Renter interface {
	Rent(ctx context.Context, filmID, customerID int) (domain.RentResult, error)
}

// Notifier receives the workflow's domain events
type Notifier interface {
	Publish(event domain.DomainEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(domain.DomainEvent) {}

type settings struct {
	pageSize    int
	timeout     time.Duration
	debounce    time.Duration
	exactPaging bool
	history     HistoryLoader
	renter      Renter
	notifier    Notifier
}

// Option configures a Workflow
type Option func(*settings)

// WithPageSize sets the number of rows requested per page
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTimeout bounds every request the workflow issues
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDebounce delays the fetch after a search term change; later changes
// within d replace the pending fetch. Zero fetches on every change.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithExactPaging computes "next" from the total count instead of from a full page
func WithExactPaging() Option {
	return func(s *settings) { s.exactPaging = true }
}

// WithDetail loads rental history whenever a View dialog opens
func WithDetail(h HistoryLoader) Option {
	return func(s *settings) { s.history = h }
}

// WithRent enables the Rent dialog
func WithRent(r Renter) Option {
	return func(s *settings) { s.renter = r }
}

// WithNotifier publishes workflow events, typically to the event bus
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifier = n
		}
	}
}

// Workflow is one self-contained list screen: query controller, list fetcher,
// modal state machine, mutation executor and optional detail loader.
type Workflow[T domain.Entity] struct {
	name   string
	source Source[T]
	schema Schema[T]
	settings

	// query controller
	query       domain.Query
	debounceGen uint64

	// list fetcher
	page     domain.Page[T]
	loaded   bool
	fetchErr error
	listGen  uint64

	// modal workflow and detail loader
	modal     Modal
	modalErr  error
	detailGen uint64

	// mutation executor
	pendingDelete *int
	busy          bool
}

// New creates a workflow named name (used in events and logs)
func New[T domain.Entity](name string, source Source[T], schema Schema[T], opts ...Option) *Workflow[T] {
	s := settings{
		pageSize: domain.DefaultPageSize,
		timeout:  10 * time.Second,
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Workflow[T]{
		name:     name,
		source:   source,
		schema:   schema,
		settings: s,
		query:    domain.Query{PageIndex: 1},
		page:     domain.Page[T]{Items: []T{}},
		modal:    Closed{},
	}
}

// PageSize returns the number of rows requested per page
func (w *Workflow[T]) PageSize() int { return w.pageSize }

// CanRent reports whether the Rent dialog is available
func (w *Workflow[T]) CanRent() bool { return w.renter != nil }

// HasDetail reports whether View dialogs load rental history
func (w *Workflow[T]) HasDetail() bool { return w.history != nil }

// Init fetches the first page
func (w *Workflow[T]) Init() tea.Cmd {
	return w.fetch()
}

// Update applies a result message produced by one of the workflow's commands.
// Messages of other workflows are ignored.
func (w *Workflow[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listResultMsg[T]:
		if msg.workflow == w.name {
			return w.applyList(msg)
		}
	case searchDebounceMsg:
		if msg.workflow == w.name && msg.gen == w.debounceGen {
			return w.fetch()
		}
	case mutationResultMsg:
		if msg.workflow == w.name {
			return w.applyMutation(msg)
		}
	case detailResultMsg:
		if msg.workflow == w.name {
			w.applyDetail(msg)
		}
	}
	return nil
}

// Snapshot is a read-only copy of a workflow's state for rendering
type Snapshot[T domain.Entity] struct {
	Query         domain.Query
	Page          domain.Page[T]
	Modal         Modal
	PendingDelete *int
	FetchErr      error
	ModalErr      error // last rejected mutation or failed validation
	Loaded        bool
	Busy          bool
	HasNext       bool
	HasPrev       bool
	TotalPages    int
}

// Snapshot returns the current state. The returned value shares nothing mutable with the workflow.
func (w *Workflow[T]) Snapshot() Snapshot[T] {
	s := Snapshot[T]{
		Query: w.query,
		Page: domain.Page[T]{
			Items:      append([]T{}, w.page.Items...),
			TotalCount: w.page.TotalCount,
		},
		Modal:      cloneModal(w.modal),
		FetchErr:   w.fetchErr,
		ModalErr:   w.modalErr,
		Loaded:     w.loaded,
		Busy:       w.busy,
		HasNext:    w.HasNext(),
		HasPrev:    w.HasPrev(),
		TotalPages: w.TotalPages(),
	}
	if w.pendingDelete != nil {
		id := *w.pendingDelete
		s.PendingDelete = &id
	}
	return s
}

// requestContext runs inside commands, off the Update loop
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (w *Workflow[T]) logger() *zap.SugaredLogger {
	return zap.S().With("workflow", w.name)
}
