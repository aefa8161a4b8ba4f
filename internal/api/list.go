package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	apperrors "github.com/goliatone/go-errors"

	"rentaldesk/internal/domain"
)

// envelope is a JSON object whose members are decoded lazily
type envelope = map[string]json.RawMessage

// listQuery builds the search/page/limit query string shared by list endpoints.
// An empty search term is omitted.
func listQuery(q domain.Query, limit int) url.Values {
	v := url.Values{}
	if q.SearchTerm != "" {
		v.Set("search", q.SearchTerm)
	}
	page := q.PageIndex
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return v
}

// decodePage reads a list envelope. Items live under the resource key
// ("customers", "films") or under "items"; a missing total falls back to the
// number of items returned.
func decodePage[T any](body envelope, key, path string) (domain.Page[T], error) {
	var page domain.Page[T]

	raw, ok := body[key]
	if !ok {
		raw, ok = body["items"]
	}
	if ok && len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return domain.Page[T]{}, apperrors.Wrap(err, apperrors.CategoryExternal, fmt.Sprintf("decode %s items", path)).
				WithTextCode(ErrCodeDecode).
				WithMetadata(map[string]any{"path": path, "key": key})
		}
	}

	if raw, ok := body["total"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &page.TotalCount); err != nil {
			return domain.Page[T]{}, apperrors.Wrap(err, apperrors.CategoryExternal, fmt.Sprintf("decode %s total", path)).
				WithTextCode(ErrCodeDecode).
				WithMetadata(map[string]any{"path": path})
		}
	} else {
		page.TotalCount = len(page.Items)
	}

	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
