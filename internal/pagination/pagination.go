// Package pagination implements offset/limit paging with previous and next
// links derived from the request URL.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/lenarsag/foodgram/backend/config"
)

// ParamError reports an out-of-range or malformed page parameter.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Params is a validated page request.
type Params struct {
	Page int
	Size int
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pager validates page parameters against the configured bounds.
type Pager struct {
	bounds config.Pagination
}

func NewPager(bounds config.Pagination) *Pager {
	return &Pager{bounds: bounds}
}

// Parse reads raw query values. Empty values take the configured defaults.
func (p *Pager) Parse(page, size string) (Params, error) {
	params := Params{Page: p.bounds.DefaultPage, Size: p.bounds.DefaultPageSize}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return Params{}, &ParamError{Field: "page", Message: "must be an integer"}
		}
		params.Page = n
	}
	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return Params{}, &ParamError{Field: "size", Message: "must be an integer"}
		}
		params.Size = n
	}
	return params, p.Validate(params)
}

// Validate checks page >= MinPage and 1 <= size <= MaxPageSize. page*size
// must also fit in an int so Offset and Links never overflow.
func (p *Pager) Validate(params Params) error {
	if params.Page < p.bounds.MinPage {
		return &ParamError{Field: "page", Message: fmt.Sprintf("must be at least %d", p.bounds.MinPage)}
	}
	if params.Size < 1 || params.Size > p.bounds.MaxPageSize {
		return &ParamError{Field: "size", Message: fmt.Sprintf("must be between 1 and %d", p.bounds.MaxPageSize)}
	}
	if params.Page > math.MaxInt/params.Size {
		return &ParamError{Field: "page", Message: fmt.Sprintf("must be at most %d for size %d", math.MaxInt/params.Size, params.Size)}
	}
	return nil
}

// Page is the envelope returned by every listing endpoint.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope for one fetched page. Results is never nil so
// it encodes as [].
func NewPage[T any](results []T, total int64, params Params, baseURL string) Page[T] {
	if results == nil {
		results = []T{}
	}
	next, previous := Links(baseURL, params, total)
	return Page[T]{Count: total, Next: next, Previous: previous, Results: results}
}

// Empty is the page returned when a listing short-circuits without a query.
func Empty[T any](params Params, baseURL string) Page[T] {
	return NewPage[T](nil, 0, params, baseURL)
}

// Links computes next iff page*size < total and previous iff page > 1.
// previous is not checked against the row count.
func Links(baseURL string, params Params, total int64) (next, previous *string) {
	if int64(params.Page)*int64(params.Size) < total {
		s := fmt.Sprintf("%s?page=%d&size=%d", baseURL, params.Page+1, params.Size)
		next = &s
	}
	if params.Page > 1 {
		s := fmt.Sprintf("%s?page=%d&size=%d", baseURL, params.Page-1, params.Size)
		previous = &s
	}
	return next, previous
}

// BaseURL is scheme://host/path of r with the query string dropped.
func BaseURL(r *http.Request) string {
	return Origin(r) + r.URL.Path
}

// Origin is scheme://host of r, honouring X-Forwarded-Proto.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}
