package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"rentaldesk/internal/ui/input/types"
)

// SearchMode edits the search term of the current list. Every edit is
// reported so the list follows the typing.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
