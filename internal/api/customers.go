package api

import (
	"context"
	"fmt"

	"rentaldesk/internal/domain"
)

// Customers is the customer resource of the API
type Customers struct {
	client *Client
}

// Customers returns the customer resource
func (c *Client) Customers() *Customers {
	return &Customers{client: c}
}

type customerPayload struct {
	ID        int    `json:"customer_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func newCustomerPayload(c domain.Customer) customerPayload {
	return customerPayload{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}
}

// List fetches one page of customers matching the query
func (r *Customers) List(ctx context.Context, q domain.Query, limit int) (domain.Page[domain.Customer], error) {
	var body envelope
	if err := r.client.get(ctx, "/customers", listQuery(q, limit), &body); err != nil {
		return domain.Page[domain.Customer]{}, err
	}
	return decodePage[domain.Customer](body, "customers", "/customers")
}

// Create adds a new customer; the id is assigned by the server
func (r *Customers) Create(ctx context.Context, c domain.Customer) error {
	c.ID = 0
	return r.client.post(ctx, "/add-customer", newCustomerPayload(c), nil)
}

// Update replaces the customer keyed by c.ID
func (r *Customers) Update(ctx context.Context, c domain.Customer) error {
	if c.ID <= 0 {
		return fmt.Errorf("update customer: invalid id %d", c.ID)
	}
	return r.client.post(ctx, "/update-customer", newCustomerPayload(c), nil)
}

// Delete removes the customer with the given id
func (r *Customers) Delete(ctx context.Context, id int) error {
	return r.client.post(ctx, "/delete-customer", map[string]int{"customer_id": id}, nil)
}

type rentalHistoryResponse struct {
	RentalHistory []domain.Rental `json:"rental_history"`
}

// RentalHistory fetches every rental of one customer, most recent first as the server orders them
func (r *Customers) RentalHistory(ctx context.Context, customerID int) ([]domain.Rental, error) {
	var resp rentalHistoryResponse
	if err := r.client.get(ctx, fmt.Sprintf("/rental-history/%d", customerID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.RentalHistory == nil {
		return []domain.Rental{}, nil
	}
	return resp.RentalHistory, nil
}
