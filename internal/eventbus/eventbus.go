package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"rentaldesk/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventListLoaded        = domain.EventListLoaded
	EventFetchFailed       = domain.EventFetchFailed
	EventMutationSucceeded = domain.EventMutationSucceeded
	EventMutationRejected  = domain.EventMutationRejected
	EventValidationFailed  = domain.EventValidationFailed
	EventDashboardLoaded   = domain.EventDashboardLoaded
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type ListLoadedEvent = domain.ListLoadedEvent
type FetchFailedEvent = domain.FetchFailedEvent
type MutationSucceededEvent = domain.MutationSucceededEvent
type MutationRejectedEvent = domain.MutationRejectedEvent
type ValidationFailedEvent = domain.ValidationFailedEvent
type DashboardLoadedEvent = domain.DashboardLoadedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// Closer is implemented by buses that own a dispatcher goroutine
type Closer interface {
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventListLoaded:
		// Too frequent while typing a search
	default:
		zap.S().Debugw("eventbus: publishing event", "type", event.Type())
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		zap.S().Warnw("eventbus: channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards undelivered events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			// Handlers run in publish order on the dispatcher goroutine
			for _, s := range subs {
				deliver(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("eventbus: handler panic",
				"type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
