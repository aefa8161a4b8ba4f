package api

import (
	"context"
	"fmt"

	"rentaldesk/internal/domain"
)

// Films is the film resource of the API
type Films struct {
	client *Client
}

// Films returns the film resource
func (c *Client) Films() *Films {
	return &Films{client: c}
}

type filmPayload struct {
	ID              int      `json:"film_id,omitempty"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	ReleaseYear     int      `json:"release_year"`
	Rating          string   `json:"rating"`
	Description     string   `json:"description"`
	LengthMinutes   int      `json:"length"`
	ReplacementCost float64  `json:"replacement_cost"`
	FeaturedActors  []string `json:"actors"`
}

func newFilmPayload(f domain.Film) filmPayload {
	actors := f.FeaturedActors
	if actors == nil {
		actors = []string{}
	}
	return filmPayload{
		ID:              f.ID,
		Title:           f.Title,
		Category:        f.Category,
		ReleaseYear:     f.ReleaseYear,
		Rating:          f.Rating,
		Description:     f.Description,
		LengthMinutes:   f.LengthMinutes,
		ReplacementCost: f.ReplacementCost,
		FeaturedActors:  actors,
	}
}

// List fetches one page of films matching the query
func (r *Films) List(ctx context.Context, q domain.Query, limit int) (domain.Page[domain.Film], error) {
	var body envelope
	if err := r.client.get(ctx, "/search-films", listQuery(q, limit), &body); err != nil {
		return domain.Page[domain.Film]{}, err
	}
	return decodePage[domain.Film](body, "films", "/search-films")
}

// Create adds a new film; available copies are managed by the server
func (r *Films) Create(ctx context.Context, f domain.Film) error {
	f.ID = 0
	return r.client.post(ctx, "/add-film", newFilmPayload(f), nil)
}

// Update replaces the film keyed by f.ID
func (r *Films) Update(ctx context.Context, f domain.Film) error {
	if f.ID <= 0 {
		return fmt.Errorf("update film: invalid id %d", f.ID)
	}
	return r.client.post(ctx, "/update-film", newFilmPayload(f), nil)
}

// Delete removes the film with the given id
func (r *Films) Delete(ctx context.Context, id int) error {
	return r.client.post(ctx, "/delete-film", map[string]int{"film_id": id}, nil)
}

type rentRequest struct {
	FilmID     int `json:"film_id"`
	CustomerID int `json:"customer_id"`
}

// Rent rents one copy of a film to a customer. The result is filled from the
// response body even when the server answers with a non-2xx status, in which
// case a *StatusError is returned as well.
func (r *Films) Rent(ctx context.Context, filmID, customerID int) (domain.RentResult, error) {
	var result domain.RentResult
	err := r.client.post(ctx, "/rent-film", rentRequest{FilmID: filmID, CustomerID: customerID}, &result)
	return result, err
}
