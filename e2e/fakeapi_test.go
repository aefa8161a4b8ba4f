//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type apiCustomer struct {
	ID        int    `json:"customer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type apiFilm struct {
	ID              int      `json:"film_id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	ReleaseYear     int      `json:"release_year"`
	Rating          string   `json:"rating"`
	Description     string   `json:"description"`
	Length          int      `json:"length"`
	ReplacementCost float64  `json:"replacement_cost"`
	Actors          []string `json:"actors"`
	AvailableCopies int      `json:"available_copies"`
}

// fakeAPI is an in-memory rental store served over HTTP
type fakeAPI struct {
	mu        sync.Mutex
	customers []apiCustomer
	films     []apiFilm
	nextID    int
	server    *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	f := &fakeAPI{
		customers: []apiCustomer{
			{ID: 1, FirstName: "Mary", LastName: "Smith", Email: "mary.smith@example.org"},
			{ID: 2, FirstName: "Patricia", LastName: "Johnson", Email: "patricia.johnson@example.org"},
			{ID: 3, FirstName: "Linda", LastName: "Williams", Email: "linda.williams@example.org"},
		},
		films: []apiFilm{
			{ID: 1, Title: "Academy Dinosaur", Category: "Documentary", ReleaseYear: 2006, Rating: "PG", Length: 86, AvailableCopies: 4},
			{ID: 2, Title: "Ace Goldfinger", Category: "Horror", ReleaseYear: 2006, Rating: "G", Length: 48, AvailableCopies: 0},
		},
		nextID: 100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/customers", f.listCustomers)
	mux.HandleFunc("/search-films", f.listFilms)
	mux.HandleFunc("/add-customer", f.addCustomer)
	mux.HandleFunc("/delete-customer", f.deleteCustomer)
	mux.HandleFunc("/rent-film", f.rentFilm)
	mux.HandleFunc("/rental-history/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"rental_history": []map[string]any{
			{"rental_id": 16, "title": "Academy Dinosaur", "rental_date": "2005-05-25 11:30:37", "return_date": nil, "returned": false},
		}})
	})
	mux.HandleFunc("/top-movies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"film_id": 1, "title": "Academy Dinosaur", "release_year": 2006, "rating": "PG", "rented_count": 34},
		})
	})
	mux.HandleFunc("/top-actors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"actor_id": 107, "first_name": "Gina", "last_name": "Degeneres", "top_films": []map[string]any{
				{"film_id": 1, "title": "Academy Dinosaur", "rental_count": 34},
			}},
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) URL() string {
	return f.server.URL
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pageParams(r *http.Request) (string, int, int) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return search, page, limit
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (f *fakeAPI) listCustomers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	search, page, limit := pageParams(r)
	var matched []apiCustomer
	for _, c := range f.customers {
		name := strings.ToLower(c.FirstName + " " + c.LastName + " " + c.Email)
		if search == "" || strings.Contains(name, search) {
			matched = append(matched, c)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": paginate(matched, page, limit), "total": len(matched)})
}

func (f *fakeAPI) listFilms(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	search, page, limit := pageParams(r)
	var matched []apiFilm
	for _, film := range f.films {
		if search == "" || strings.Contains(strings.ToLower(film.Title), search) {
			matched = append(matched, film)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"films": paginate(matched, page, limit), "total": len(matched)})
}

func (f *fakeAPI) addCustomer(w http.ResponseWriter, r *http.Request) {
	var c apiCustomer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.customers = append(f.customers, c)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer added"})
}

func (f *fakeAPI) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.customers {
		if c.ID == body.ID {
			f.customers = append(f.customers[:i], f.customers[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
}

func (f *fakeAPI) rentFilm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FilmID     int `json:"film_id"`
		CustomerID int `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.films {
		if f.films[i].ID != body.FilmID {
			continue
		}
		if f.films[i].AvailableCopies == 0 {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "No copies available"})
			return
		}
		f.films[i].AvailableCopies--
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Film rented"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Film not found"})
}

func (f *fakeAPI) customerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.customers)
}
