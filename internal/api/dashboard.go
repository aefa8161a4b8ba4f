package api

import (
	"context"

	"rentaldesk/internal/domain"
)

// TopMovies fetches the most rented films
func (c *Client) TopMovies(ctx context.Context) ([]domain.TopFilm, error) {
	var films []domain.TopFilm
	if err := c.get(ctx, "/top-movies", nil, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// TopActors fetches the actors whose films are rented most, with each actor's top films
func (c *Client) TopActors(ctx context.Context) ([]domain.TopActor, error) {
	var actors []domain.TopActor
	if err := c.get(ctx, "/top-actors", nil, &actors); err != nil {
		return nil, err
	}
	return actors, nil
}
