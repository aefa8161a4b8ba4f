package input

import (
	"rentaldesk/internal/ui/input/types"
)

// ModelContext implements the Context interface for the input handler.
// The model fills it in before every key press.
type ModelContext struct {
	Tab        types.Tab
	RowCount   int
	Rentable   bool
	Detail     bool
	SearchText string
}

func (c *ModelContext) CurrentTab() types.Tab {
	return c.Tab
}

// HasRow reports whether the cursor is on a list row
func (c *ModelContext) HasRow() bool {
	return c.RowCount > 0
}

func (c *ModelContext) CanRent() bool {
	return c.Rentable
}

func (c *ModelContext) HasDetail() bool {
	return c.Detail
}

func (c *ModelContext) SearchTerm() string {
	return c.SearchText
}
