package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk/internal/domain"
)

func TestDraftWithDoesNotMutateReceiver(t *testing.T) {
	d := CustomerSchema{}.Blank()
	changed := d.With(FieldEmail, "a@b.c")

	assert.Equal(t, "", d.Get(FieldEmail))
	assert.Equal(t, "a@b.c", changed.Get(FieldEmail))
	assert.False(t, d.Equal(changed))
	assert.Equal(t, d, d.With("no_such_field", "x"))
}

func TestFilmDraftRoundTrip(t *testing.T) {
	film := domain.Film{
		ID:              8,
		Title:           "AIRPORT POLLOCK",
		Category:        "Horror",
		ReleaseYear:     2006,
		Rating:          "R",
		Description:     "A Epic Tale of a Moose",
		LengthMinutes:   54,
		ReplacementCost: 15.99,
		FeaturedActors:  []string{"FAY KILMER", "GENE WILLIS"},
		AvailableCopies: 3,
	}

	d := FilmSchema{}.Draft(film)
	assert.Equal(t, "FAY KILMER, GENE WILLIS", d.Get(FieldActors))
	assert.Equal(t, "15.99", d.Get(FieldReplacementCost))

	back, err := FilmSchema{}.Build(d, film.ID)
	require.NoError(t, err)

	want := film
	want.AvailableCopies = 0
	assert.Equal(t, want, back)
}

func TestCustomerBuildRejectsMalformedEmail(t *testing.T) {
	d := CustomerSchema{}.Draft(domain.Customer{FirstName: "A", LastName: "B", Email: "not-an-address"})
	_, err := CustomerSchema{}.Build(d, 0)
	assert.Error(t, err)
}

func TestFilmBuildRejectsNegativeNumbers(t *testing.T) {
	base := FilmSchema{}.Blank().With(FieldTitle, "X").With(FieldReleaseYear, "2006")

	for name, d := range map[string]Draft{
		"length": base.With(FieldLength, "-5"),
		"cost":   base.With(FieldReplacementCost, "-1"),
		"year":   base.With(FieldReleaseYear, "20x6"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FilmSchema{}.Build(d, 0)
			assert.Error(t, err)
		})
	}
}

func TestModalKindStrings(t *testing.T) {
	assert.Equal(t, "closed", ModalClosed.String())
	assert.Equal(t, "rent", RentModal[domain.Film]{}.Kind().String())
	assert.Equal(t, "view", ViewModal[domain.Customer]{}.Kind().String())
}
