package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// ErrInvalidParams is wrapped by every parse failure.
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Params represents pagination query parameters.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page

	// Requested is true when the client sent page or limit.
	Requested bool
}

// Offset returns the row offset of the page.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// Validate checks that page and limit are positive and that the page's
// offset fits in an int.
func (p Params) Validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return fmt.Errorf("%w: page and limit must be positive", ErrInvalidParams)
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return fmt.Errorf("%w: page %d is out of range", ErrInvalidParams, p.Page)
	}
	return nil
}

// ParseQuery reads page and limit from q, applying config defaults for
// absent values. Present values must be integers within range.
func ParseQuery(q url.Values, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if q.Has("page") {
		params.Requested = true
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", ErrInvalidParams)
		}
		params.Page = page
	}

	if q.Has("limit") {
		params.Requested = true
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParams, config.MaxLimit)
		}
		params.Limit = limit
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}
