package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	apperrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk/internal/domain"
)

type recorded struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   map[string]any
}

// fakeAPI answers from a route table and records every request it sees
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{t: t, routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithUserAgent("rentaldesk-test"))
	require.NoError(t, err)
	return f, c
}

func (f *fakeAPI) handle(route string, h func(w http.ResponseWriter, r *http.Request)) {
	f.routes[route] = h
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}, Header: r.Header.Clone()}
	for k := range r.URL.Query() {
		rec.Query[k] = r.URL.Query().Get(k)
	}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		assert.NoError(f.t, json.Unmarshal(data, &rec.Body))
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	h, ok := f.routes[r.Method+" "+r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("localhost:5000")
	require.Error(t, err)
}

func TestCustomersListSendsQueryAndHeaders(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"customers":[{"customer_id":1,"first_name":"Ann","last_name":"Smith","email":"ann@example.com"}],"total":12}`)
	})

	page, err := c.Customers().List(context.Background(), domain.Query{SearchTerm: "Smith", PageIndex: 2}, 10)
	require.NoError(t, err)

	want := domain.Page[domain.Customer]{
		Items:      []domain.Customer{{ID: 1, FirstName: "Ann", LastName: "Smith", Email: "ann@example.com"}},
		TotalCount: 12,
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}

	req := f.last()
	assert.Equal(t, map[string]string{"search": "Smith", "page": "2", "limit": "10"}, req.Query)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "rentaldesk-test", req.Header.Get("User-Agent"))
	_, err = uuid.Parse(req.Header.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestListOmitsEmptySearchAndAcceptsItemsEnvelope(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /search-films", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[{"film_id":3,"title":"ACADEMY DINOSAUR","actors":["PENELOPE GUINESS"],"available_copies":2}]}`)
	})

	page, err := c.Films().List(context.Background(), domain.Query{PageIndex: 1}, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ACADEMY DINOSAUR", page.Items[0].Title)
	assert.Equal(t, []string{"PENELOPE GUINESS"}, page.Items[0].FeaturedActors)
	assert.Equal(t, 1, page.TotalCount, "missing total falls back to the item count")

	_, hasSearch := f.last().Query["search"]
	assert.False(t, hasSearch)
}

func TestListEmptyEnvelopeYieldsEmptyPage(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"customers":null,"total":0}`)
	})

	page, err := c.Customers().List(context.Background(), domain.Query{PageIndex: 1}, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)
}

func TestNon2xxReturnsStatusErrorWithMessage(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("POST /add-customer", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"email already registered"}`)
	})

	err := c.Customers().Create(context.Background(), domain.Customer{FirstName: "Ann", LastName: "Smith", Email: "ann@example.com"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "email already registered", statusErr.Message)
	assert.Contains(t, err.Error(), "/add-customer")
}

func TestCreateOmitsServerAssignedID(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("POST /add-customer", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{}`)
	})

	require.NoError(t, c.Customers().Create(context.Background(), domain.Customer{ID: 99, FirstName: "Ann", LastName: "Smith", Email: "a@b.c"}))

	req := f.last()
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotContains(t, req.Body, "customer_id")
	assert.Equal(t, "Ann", req.Body["first_name"])
}

func TestUpdateAndDeleteBodies(t *testing.T) {
	f, c := newFakeAPI(t)
	ok := func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, `{}`) }
	f.handle("POST /update-film", ok)
	f.handle("POST /delete-customer", ok)
	f.handle("POST /delete-film", ok)

	require.NoError(t, c.Films().Update(context.Background(), domain.Film{ID: 5, Title: "ALIEN CENTER", ReleaseYear: 2006}))
	upd := f.last().Body
	assert.EqualValues(t, 5, upd["film_id"])
	assert.EqualValues(t, 2006, upd["release_year"])
	assert.Equal(t, []any{}, upd["actors"])

	require.NoError(t, c.Customers().Delete(context.Background(), 7))
	assert.Equal(t, map[string]any{"customer_id": float64(7)}, f.last().Body)

	require.NoError(t, c.Films().Delete(context.Background(), 5))
	assert.Equal(t, map[string]any{"film_id": float64(5)}, f.last().Body)

	assert.Error(t, c.Customers().Update(context.Background(), domain.Customer{}))
}

func TestRentReportsServerMessage(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("POST /rent-film", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"success":false,"message":"No copies available"}`)
	})

	result, err := c.Films().Rent(context.Background(), 3, 42)
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No copies available", result.Message)
	assert.Equal(t, map[string]any{"film_id": float64(3), "customer_id": float64(42)}, f.last().Body)
}

func TestRentSuccess(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("POST /rent-film", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"message":"Film rented"}`)
	})

	result, err := c.Films().Rent(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.RentResult{Success: true, Message: "Film rented"}, result)
}

func TestRentalHistory(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /rental-history/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"rental_history":[
			{"rental_id":10,"title":"ALIEN CENTER","rental_date":"2005-05-25","return_date":null,"returned":false},
			{"rental_id":9,"title":"ACE GOLDFINGER","rental_date":"2005-05-24","return_date":"2005-05-28","returned":true}]}`)
	})

	rentals, err := c.Customers().RentalHistory(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Nil(t, rentals[0].ReturnDate)
	require.NotNil(t, rentals[1].ReturnDate)
	assert.Equal(t, "2005-05-28", *rentals[1].ReturnDate)
	assert.True(t, rentals[1].Returned)
}

func TestDashboardEndpoints(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /top-movies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"film_id":1,"title":"BUCKET BROTHERHOOD","rented_count":34}]`)
	})
	f.handle("GET /top-actors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"actor_id":107,"first_name":"GINA","last_name":"DEGENERES","top_films":[{"film_id":1,"title":"BUCKET BROTHERHOOD","rental_count":34}]}]`)
	})

	movies, err := c.TopMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.TopFilm{{ID: 1, Title: "BUCKET BROTHERHOOD", RentedCount: 34}}, movies)

	actors, err := c.TopActors(context.Background())
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, 34, actors[0].TopFilms[0].RentalCount)
}

func TestDecodeFailureIsCoded(t *testing.T) {
	f, c := newFakeAPI(t)
	f.handle("GET /top-movies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"not":"a list"}`)
	})

	_, err := c.TopMovies(context.Background())
	var ge *apperrors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, ErrCodeDecode, ge.TextCode)
}

func TestTransportFailureIsCoded(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base)
	require.NoError(t, err)

	_, err = c.Customers().List(context.Background(), domain.Query{PageIndex: 1}, 10)
	var ge *apperrors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, ErrCodeTransport, ge.TextCode)
	assert.Equal(t, apperrors.CategoryExternal, ge.Category)
}
