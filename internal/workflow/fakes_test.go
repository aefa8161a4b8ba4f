package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rentaldesk/internal/domain"
)

// memStore is an in-memory Source that filters and paginates like the API
type memStore[T domain.Entity] struct {
	mu      sync.Mutex
	items   []T
	match   func(T, string) bool
	withID  func(T, int) T
	nextID  int
	listErr error
	mutErr  error
	lists   []domain.Query
	created []T
	updated []T
	deleted []int
}

func (s *memStore[T]) List(_ context.Context, q domain.Query, limit int) (domain.Page[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, q)
	if s.listErr != nil {
		return domain.Page[T]{}, s.listErr
	}

	var hits []T
	for _, it := range s.items {
		if q.SearchTerm == "" || s.match(it, q.SearchTerm) {
			hits = append(hits, it)
		}
	}
	start := (q.PageIndex - 1) * limit
	if start > len(hits) {
		start = len(hits)
	}
	end := start + limit
	if end > len(hits) {
		end = len(hits)
	}
	return domain.Page[T]{Items: append([]T{}, hits[start:end]...), TotalCount: len(hits)}, nil
}

func (s *memStore[T]) Create(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutErr != nil {
		return s.mutErr
	}
	s.nextID++
	e = s.withID(e, s.nextID)
	s.created = append(s.created, e)
	s.items = append(s.items, e)
	return nil
}

func (s *memStore[T]) Update(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutErr != nil {
		return s.mutErr
	}
	s.updated = append(s.updated, e)
	for i, it := range s.items {
		if it.EntityID() == e.EntityID() {
			s.items[i] = e
		}
	}
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutErr != nil {
		return s.mutErr
	}
	s.deleted = append(s.deleted, id)
	kept := s.items[:0]
	for _, it := range s.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

func (s *memStore[T]) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists)
}

func newCustomerStore(n int, lastName string) *memStore[domain.Customer] {
	s := &memStore[domain.Customer]{
		match: func(c domain.Customer, term string) bool {
			term = strings.ToLower(term)
			return strings.Contains(strings.ToLower(c.FirstName+" "+c.LastName+" "+c.Email), term)
		},
		withID: func(c domain.Customer, id int) domain.Customer { c.ID = id; return c },
	}
	for i := 1; i <= n; i++ {
		s.items = append(s.items, domain.Customer{
			ID: i, FirstName: fmt.Sprintf("Cust%d", i), LastName: lastName,
			Email: fmt.Sprintf("c%d@example.com", i),
		})
	}
	s.nextID = n
	return s
}

func newFilmStore(n int) *memStore[domain.Film] {
	s := &memStore[domain.Film]{
		match: func(f domain.Film, term string) bool {
			return strings.Contains(strings.ToLower(f.Title), strings.ToLower(term))
		},
		withID: func(f domain.Film, id int) domain.Film { f.ID = id; return f },
	}
	for i := 1; i <= n; i++ {
		s.items = append(s.items, domain.Film{ID: i, Title: fmt.Sprintf("FILM %02d", i), ReleaseYear: 2006, AvailableCopies: 1})
	}
	s.nextID = n
	return s
}

type fakeHistory struct {
	mu    sync.Mutex
	calls []int
	byID  map[int][]domain.Rental
	err   error
}

func (h *fakeHistory) RentalHistory(_ context.Context, customerID int) ([]domain.Rental, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, customerID)
	if h.err != nil {
		return nil, h.err
	}
	return h.byID[customerID], nil
}

type fakeRenter struct {
	mu     sync.Mutex
	calls  [][2]int
	result domain.RentResult
	err    error
}

func (r *fakeRenter) Rent(_ context.Context, filmID, customerID int) (domain.RentResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]int{filmID, customerID})
	return r.result, r.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (n *recordingNotifier) Publish(e domain.DomainEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) ofType(t domain.EventType) []domain.DomainEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.DomainEvent
	for _, e := range n.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

// drain runs cmd and feeds every resulting message back into the workflow
// until no further command is produced, like the Bubble Tea runtime would.
func drain[T domain.Entity](t *testing.T, w *Workflow[T], cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 20 {
			t.Fatal("workflow did not settle")
		}
		cmd = w.Update(cmd())
	}
}
