package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"rentaldesk/internal/domain"
)

// Schema converts between an entity and its editable draft
type Schema[T domain.Entity] interface {
	// Blank returns the draft an Add dialog starts from
	Blank() Draft
	// Draft returns a field-wise copy of entity
	Draft(entity T) Draft
	// Build parses a draft back into an entity with the given id.
	// It fails when a typed field does not parse.
	Build(d Draft, id int) (T, error)
}

// Customer draft field names
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
)

// Film draft field names
const (
	FieldTitle           = "title"
	FieldCategory        = "category"
	FieldReleaseYear     = "release_year"
	FieldRating          = "rating"
	FieldDescription     = "description"
	FieldLength          = "length"
	FieldReplacementCost = "replacement_cost"
	FieldActors          = "actors"
)

var customerFields = []Field{
	{Name: FieldFirstName, Label: "First name", Required: true},
	{Name: FieldLastName, Label: "Last name", Required: true},
	{Name: FieldEmail, Label: "Email", Required: true},
}

var filmFields = []Field{
	{Name: FieldTitle, Label: "Title", Required: true},
	{Name: FieldCategory, Label: "Category"},
	{Name: FieldReleaseYear, Label: "Release year", Required: true},
	{Name: FieldRating, Label: "Rating"},
	{Name: FieldDescription, Label: "Description"},
	{Name: FieldLength, Label: "Length (min)"},
	{Name: FieldReplacementCost, Label: "Replacement cost"},
	{Name: FieldActors, Label: "Actors (comma separated)"},
}

// CustomerSchema maps customers to drafts
type CustomerSchema struct{}

func (CustomerSchema) Blank() Draft {
	return NewDraft(customerFields...)
}

func (s CustomerSchema) Draft(c domain.Customer) Draft {
	return s.Blank().
		With(FieldFirstName, c.FirstName).
		With(FieldLastName, c.LastName).
		With(FieldEmail, c.Email)
}

func (CustomerSchema) Build(d Draft, id int) (domain.Customer, error) {
	email := strings.TrimSpace(d.Get(FieldEmail))
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, fmt.Errorf("email %q is not an address", email)
	}
	return domain.Customer{
		ID:        id,
		FirstName: strings.TrimSpace(d.Get(FieldFirstName)),
		LastName:  strings.TrimSpace(d.Get(FieldLastName)),
		Email:     email,
	}, nil
}

// FilmSchema maps films to drafts
type FilmSchema struct{}

func (FilmSchema) Blank() Draft {
	return NewDraft(filmFields...)
}

func (s FilmSchema) Draft(f domain.Film) Draft {
	d := s.Blank().
		With(FieldTitle, f.Title).
		With(FieldCategory, f.Category).
		With(FieldRating, f.Rating).
		With(FieldDescription, f.Description).
		With(FieldActors, strings.Join(f.FeaturedActors, ", "))
	if f.ReleaseYear != 0 {
		d = d.With(FieldReleaseYear, strconv.Itoa(f.ReleaseYear))
	}
	if f.LengthMinutes != 0 {
		d = d.With(FieldLength, strconv.Itoa(f.LengthMinutes))
	}
	if f.ReplacementCost != 0 {
		d = d.With(FieldReplacementCost, strconv.FormatFloat(f.ReplacementCost, 'f', 2, 64))
	}
	return d
}

func (FilmSchema) Build(d Draft, id int) (domain.Film, error) {
	f := domain.Film{
		ID:          id,
		Title:       strings.TrimSpace(d.Get(FieldTitle)),
		Category:    strings.TrimSpace(d.Get(FieldCategory)),
		Rating:      strings.TrimSpace(d.Get(FieldRating)),
		Description: strings.TrimSpace(d.Get(FieldDescription)),
	}

	var err error
	if f.ReleaseYear, err = optionalInt(d, FieldReleaseYear, "release year"); err != nil {
		return domain.Film{}, err
	}
	if f.LengthMinutes, err = optionalInt(d, FieldLength, "length"); err != nil {
		return domain.Film{}, err
	}
	if raw := strings.TrimSpace(d.Get(FieldReplacementCost)); raw != "" {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil || cost < 0 {
			return domain.Film{}, fmt.Errorf("replacement cost must be a non-negative number, got %q", raw)
		}
		f.ReplacementCost = cost
	}

	f.FeaturedActors = []string{}
	for _, name := range strings.Split(d.Get(FieldActors), ",") {
		if name = strings.TrimSpace(name); name != "" {
			f.FeaturedActors = append(f.FeaturedActors, name)
		}
	}
	return f, nil
}

func optionalInt(d Draft, name, label string) (int, error) {
	raw := strings.TrimSpace(d.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a whole number, got %q", label, raw)
	}
	return n, nil
}
