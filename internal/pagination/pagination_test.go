package pagination

import (
	"crypto/tls"
	"math"
	"strconv"
	"net/http/httptest"
	"testing"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bounds = config.Pagination{MinPage: 1, DefaultPage: 1, DefaultPageSize: 6, MaxPageSize: 100}

func TestParseDefaults(t *testing.T) {
	params, err := NewPager(bounds).Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Size: 6}, params)
	assert.Equal(t, 0, params.Offset())
}

func TestParseBounds(t *testing.T) {
	pager := NewPager(bounds)

	tests := []struct {
		name  string
		page  string
		size  string
		field string
	}{
		{"page zero", "0", "10", "page"},
		{"negative page", "-3", "10", "page"},
		{"page not a number", "abc", "10", "page"},
		{"size zero", "1", "0", "size"},
		{"size above max", "1", "101", "size"},
		{"size not a number", "1", "ten", "size"},
		{"page times size overflows", "4611686018427387905", "4", "page"},
		{"page past int range", "9223372036854775808", "1", "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pager.Parse(tt.page, tt.size)
			var perr *ParamError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
		})
	}

	params, err := pager.Parse("3", "100")
	require.NoError(t, err)
	assert.Equal(t, 200, params.Offset())
}

func TestLargestAcceptedPageHasNoNext(t *testing.T) {
	pager := NewPager(bounds)
	params, err := pager.Parse(strconv.Itoa(math.MaxInt/4), "4")
	require.NoError(t, err)
	assert.Positive(t, params.Offset())

	page := NewPage[int](nil, 1, params, "http://testserver/api/users")
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Empty(t, page.Results)
}

func TestLinksNextAbsentWhenPageCoversTotal(t *testing.T) {
	const base = "http://testserver/api/recipes"
	for total := int64(0); total <= 30; total++ {
		for size := 1; size <= 10; size++ {
			for page := 1; page <= 10; page++ {
				next, previous := Links(base, Params{Page: page, Size: size}, total)
				if int64(page*size) >= total {
					assert.Nil(t, next, "page=%d size=%d total=%d", page, size, total)
				} else {
					require.NotNil(t, next)
				}
				if page > 1 {
					assert.NotNil(t, previous, "page=%d size=%d total=%d", page, size, total)
				} else {
					assert.Nil(t, previous)
				}
			}
		}
	}
}

func TestLinksFormat(t *testing.T) {
	next, previous := Links("http://testserver/api/users", Params{Page: 2, Size: 5}, 11)
	require.NotNil(t, next)
	require.NotNil(t, previous)
	assert.Equal(t, "http://testserver/api/users?page=3&size=5", *next)
	assert.Equal(t, "http://testserver/api/users?page=1&size=5", *previous)
}

func TestPreviousPresentBeyondLastPage(t *testing.T) {
	next, previous := Links("http://x/api/recipes", Params{Page: 9, Size: 10}, 3)
	assert.Nil(t, next)
	require.NotNil(t, previous)
	assert.Equal(t, "http://x/api/recipes?page=8&size=10", *previous)
}

func TestNewPageNeverNilResults(t *testing.T) {
	page := Empty[int](Params{Page: 1, Size: 6}, "http://x/")
	assert.NotNil(t, page.Results)
	assert.Zero(t, page.Count)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/api/recipes?page=2&tags=a", nil)
	assert.Equal(t, "http://example.com/api/recipes", BaseURL(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://example.com/api/recipes", BaseURL(r))

	r = httptest.NewRequest("GET", "http://example.com/api/users", nil)
	r.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://example.com/api/users", BaseURL(r))
	assert.Equal(t, "https://example.com", Origin(r))
}
