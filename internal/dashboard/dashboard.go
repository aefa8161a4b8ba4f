// Package dashboard loads the landing screen: the most rented films and the
// actors whose films are rented most.
package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rentaldesk/internal/domain"
)

// Limit is how many films and actors the landing screen shows
const Limit = 5

// Source is the part of the API the dashboard reads
type Source interface {
	TopMovies(ctx context.Context) ([]domain.TopFilm, error)
	TopActors(ctx context.Context) ([]domain.TopActor, error)
}

// Result holds both halves of a dashboard load. Each half fails on its own.
type Result struct {
	Movies    []domain.TopFilm
	Actors    []domain.TopActor
	MoviesErr error
	ActorsErr error
}

// Err returns the first failure of either half
func (r Result) Err() error {
	if r.MoviesErr != nil {
		return r.MoviesErr
	}
	return r.ActorsErr
}

// Service fetches the dashboard data
type Service struct {
	source  Source
	timeout time.Duration
}

// NewService creates a dashboard service
func NewService(source Source, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{source: source, timeout: timeout}
}

// Load fetches top movies and top actors concurrently. A failing half does
// not cancel the other one.
func (s *Service) Load(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		res Result
		g   errgroup.Group
	)
	g.Go(func() error {
		movies, err := s.source.TopMovies(ctx)
		if err != nil {
			res.MoviesErr = err
			return err
		}
		res.Movies = truncate(movies, Limit)
		return nil
	})
	g.Go(func() error {
		actors, err := s.source.TopActors(ctx)
		if err != nil {
			res.ActorsErr = err
			return err
		}
		for i := range actors {
			actors[i].TopFilms = truncate(actors[i].TopFilms, Limit)
		}
		res.Actors = truncate(actors, Limit)
		return nil
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorw("dashboard load incomplete", "movies_error", res.MoviesErr, "actors_error", res.ActorsErr)
	}
	return res
}

func truncate[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

type loadedMsg struct {
	gen    uint64
	result Result
}

// Snapshot is what the landing screen renders
type Snapshot struct {
	Result
	Loaded bool
}

// Model is the Bubble Tea sub-model of the landing screen
type Model struct {
	service  *Service
	notifier interface{ Publish(domain.DomainEvent) }
	state    Snapshot
	gen      uint64 // bumped per Reload; older results are dropped
}

// NewModel creates the landing screen model. notifier may be nil.
func NewModel(service *Service, notifier interface{ Publish(domain.DomainEvent) }) *Model {
	return &Model{service: service, notifier: notifier}
}

// Init starts the first load
func (m *Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the dashboard again, keeping the current data until the result arrives
func (m *Model) Reload() tea.Cmd {
	m.gen++
	service, gen := m.service, m.gen
	return func() tea.Msg {
		return loadedMsg{gen: gen, result: service.Load(context.Background())}
	}
}

// Update applies a finished load
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(loadedMsg)
	if !ok {
		return nil
	}
	if loaded.gen != m.gen {
		zap.S().Debugw("dropping stale dashboard load", "gen", loaded.gen, "current", m.gen)
		return nil
	}
	res := loaded.result
	// keep the previous half when only one side failed
	if res.MoviesErr != nil && m.state.Loaded {
		res.Movies = m.state.Movies
	}
	if res.ActorsErr != nil && m.state.Loaded {
		res.Actors = m.state.Actors
	}
	m.state = Snapshot{Result: res, Loaded: true}

	if m.notifier != nil {
		m.notifier.Publish(domain.DashboardLoadedEvent{
			Movies: len(res.Movies),
			Actors: len(res.Actors),
			Err:    res.Err(),
		})
	}
	return nil
}

// Snapshot returns the current landing screen state
func (m *Model) Snapshot() Snapshot {
	return m.state
}
