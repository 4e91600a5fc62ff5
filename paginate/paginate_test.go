package paginate

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{
	MaxLimit:    10,
	SortFields:  []string{"id", "title"},
	DefaultSort: "id",
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Params
	}{
		{"defaults", "/articles", Params{Page: 1, Limit: 10, Sort: "id", Direction: "asc"}},
		{"page", "/articles?page=3", Params{Page: 3, Limit: 10, Sort: "id", Direction: "asc"}},
		{"invalid page", "/articles?page=abc", Params{Page: 1, Limit: 10, Sort: "id", Direction: "asc"}},
		{"negative page", "/articles?page=-2", Params{Page: 1, Limit: 10, Sort: "id", Direction: "asc"}},
		{"smaller limit", "/articles?limit=5", Params{Page: 1, Limit: 5, Sort: "id", Direction: "asc"}},
		{"limit capped", "/articles?limit=500", Params{Page: 1, Limit: 10, Sort: "id", Direction: "asc"}},
		{"sort desc", "/articles?sort=title&direction=desc", Params{Page: 1, Limit: 10, Sort: "title", Direction: "desc"}},
		{"unknown sort", "/articles?sort=content&direction=sideways", Params{Page: 1, Limit: 10, Sort: "id", Direction: "asc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			assert.Equal(t, tt.want, ParseRequest(r, testOptions))
		})
	}
}

func TestParseRequest_DefaultLimitAboveMax(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles", nil)
	opts := testOptions
	opts.DefaultLimit = 20

	assert.Equal(t, 10, ParseRequest(r, opts).Limit)
}

func TestNew_PageCount(t *testing.T) {
	tests := []struct {
		count     int
		wantPages int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{100, 10},
		{101, 11},
	}

	r := httptest.NewRequest("GET", "/articles", nil)
	for _, tt := range tests {
		p, err := New(r, Params{Page: 1, Limit: 10}, tt.count)
		require.NoError(t, err)
		assert.Equal(t, tt.wantPages, p.PageCount, "count %d", tt.count)
	}
}

func TestNew_OutOfRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles?page=11", nil)
	_, err := New(r, Params{Page: 11, Limit: 10}, 100)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	// Empty result sets still have a first page
	_, err = New(r, Params{Page: 1, Limit: 10}, 0)
	assert.NoError(t, err)
}

func TestPage_Counts(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles", nil)

	p, err := New(r, Params{Page: 3, Limit: 10}, 25)
	require.NoError(t, err)

	assert.Equal(t, 5, p.CurrentCount())
	assert.Equal(t, 21, p.Start())
	assert.Equal(t, 25, p.End())
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())

	empty, err := New(r, Params{Page: 1, Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.CurrentCount())
	assert.Equal(t, 0, empty.Start())
	assert.Equal(t, 0, empty.End())
	assert.False(t, empty.HasNext())
}

func TestPage_URLs(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles/search?q=foo&page=2&limit=5", nil)

	p, err := New(r, ParseRequest(r, testOptions), 30)
	require.NoError(t, err)

	assert.Equal(t, "/articles/search?limit=5&page=3&q=foo", p.NextURL())
	assert.Equal(t, "/articles/search?limit=5&q=foo", p.PrevURL())
	assert.Equal(t, "/articles/search?limit=5&q=foo", p.FirstURL())
	assert.Equal(t, "/articles/search?limit=5&page=6&q=foo", p.LastURL())
}

func TestPage_URLWithoutQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles", nil)

	p, err := New(r, ParseRequest(r, testOptions), 30)
	require.NoError(t, err)

	assert.Equal(t, "/articles", p.FirstURL())
	assert.Equal(t, "/articles?page=2", p.NextURL())
}

func TestPage_SortURL(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles/search?q=foo&page=2&sort=title&direction=asc", nil)

	p, err := New(r, ParseRequest(r, testOptions), 30)
	require.NoError(t, err)

	// Same field flips direction and resets to the first page
	assert.Equal(t, "/articles/search?direction=desc&q=foo&sort=title", p.SortURL("title"))
	// Other field starts ascending
	assert.Equal(t, "/articles/search?direction=asc&q=foo&sort=id", p.SortURL("id"))
	assert.True(t, p.IsSortedBy("title"))
}

func TestPage_Numbers(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles", nil)

	tests := []struct {
		name  string
		page  int
		count int
		want  []int
	}{
		{"few pages", 1, 30, []int{1, 2, 3}},
		{"start", 1, 200, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"middle", 10, 200, []int{6, 7, 8, 9, 10, 11, 12, 13, 14}},
		{"end", 20, 200, []int{12, 13, 14, 15, 16, 17, 18, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(r, Params{Page: tt.page, Limit: 10}, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Numbers())
		})
	}
}
