package domain

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of rows requested per list page
const DefaultPageSize = 10

// Entity is anything a workflow can list and mutate
type Entity interface {
	EntityID() int
}

// Customer represents a rental store customer
type Customer struct {
	ID        int    `json:"customer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (c Customer) EntityID() int { return c.ID }

// FullName returns "First Last"
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Film represents a film in the catalog
type Film struct {
	ID              int      `json:"film_id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	ReleaseYear     int      `json:"release_year"`
	Rating          string   `json:"rating"`
	Description     string   `json:"description"`
	LengthMinutes   int      `json:"length"`
	ReplacementCost float64  `json:"replacement_cost"`
	FeaturedActors  []string `json:"actors"`
	AvailableCopies int      `json:"available_copies"`
}

func (f Film) EntityID() int { return f.ID }

// Rental is one row of a customer's rental history
type Rental struct {
	RentalID   int     `json:"rental_id"`
	Title      string  `json:"title"`
	RentalDate string  `json:"rental_date"`
	ReturnDate *string `json:"return_date"`
	Returned   bool    `json:"returned"`
}

// RentResult is the server's answer to a rent request
type RentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TopFilm is a film on the dashboard's most-rented list
type TopFilm struct {
	ID          int    `json:"film_id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	RentedCount int    `json:"rented_count"`
}

// ActorFilm is one of an actor's most-rented films
type ActorFilm struct {
	ID          int    `json:"film_id"`
	Title       string `json:"title"`
	RentalCount int    `json:"rental_count"`
}

// TopActor is an actor on the dashboard's most-rented list
type TopActor struct {
	ID        int         `json:"actor_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	TopFilms  []ActorFilm `json:"top_films"`
}

// Query is the search term and 1-based page index a list is fetched for
type Query struct {
	SearchTerm string
	PageIndex  int
}

// Page is one bounded slice of a filtered result set plus the total match count
type Page[T any] struct {
	Items      []T
	TotalCount int
}

// TotalPages returns ceil(TotalCount/pageSize), never less than 1
func (p Page[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 || p.TotalCount <= 0 {
		return 1
	}
	return (p.TotalCount + pageSize - 1) / pageSize
}

// FormatID renders an entity id for display and log fields
func FormatID(id int) string {
	return strconv.Itoa(id)
}
