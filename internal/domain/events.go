package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventListLoaded        EventType = "ListLoaded"
	EventFetchFailed       EventType = "FetchFailed"
	EventMutationSucceeded EventType = "MutationSucceeded"
	EventMutationRejected  EventType = "MutationRejected"
	EventValidationFailed  EventType = "ValidationFailed"
	EventDashboardLoaded   EventType = "DashboardLoaded"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Mutation operations reported in events
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpRent   = "rent"
)

// ListLoadedEvent is emitted when a workflow applies a freshly fetched page
type ListLoadedEvent struct {
	Workflow   string
	Query      Query
	Count      int
	TotalCount int
}

func (e ListLoadedEvent) Type() EventType { return EventListLoaded }

// FetchFailedEvent is emitted when a list or detail load fails
type FetchFailedEvent struct {
	Workflow string
	Resource string // "list" or "rental_history"
	Err      error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// MutationSucceededEvent is emitted when the server accepts a mutation
type MutationSucceededEvent struct {
	Workflow string
	Op       string
	ID       int
}

func (e MutationSucceededEvent) Type() EventType { return EventMutationSucceeded }

// MutationRejectedEvent is emitted when the server refuses a mutation or it fails in transit
type MutationRejectedEvent struct {
	Workflow string
	Op       string
	ID       int
	Message  string
	Err      error
}

func (e MutationRejectedEvent) Type() EventType { return EventMutationRejected }

// ValidationFailedEvent is emitted when a client-side precondition stops a request
type ValidationFailedEvent struct {
	Workflow string
	Op       string
	Message  string
}

func (e ValidationFailedEvent) Type() EventType { return EventValidationFailed }

// DashboardLoadedEvent is emitted when the landing dashboard finishes loading
type DashboardLoadedEvent struct {
	Movies int
	Actors int
	Err    error
}

func (e DashboardLoadedEvent) Type() EventType { return EventDashboardLoaded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
