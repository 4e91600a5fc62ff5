// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package paginate turns page, limit, sort and direction query parameters into
// a validated window and builds links that keep the rest of the query.
package paginate

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
)

// ErrPageOutOfRange is returned when the requested page is past the last one.
var ErrPageOutOfRange = errors.New("page out of range")

const (
	directionAsc  = "asc"
	directionDesc = "desc"
)

// numbersWindow is how many numbered links surround the current page.
const numbersWindow = 9

type Options struct {
	MaxLimit     int
	DefaultLimit int // 0 means MaxLimit
	SortFields   []string
	DefaultSort  string
}

// Params is the validated paging window requested by a client.
type Params struct {
	Page      int
	Limit     int
	Sort      string
	Direction string
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseRequest reads page, limit, sort and direction from the query string.
// Invalid values fall back to defaults; limit never exceeds MaxLimit.
func ParseRequest(r *http.Request, opts Options) Params {
	q := r.URL.Query()

	p := Params{
		Page:      1,
		Limit:     opts.DefaultLimit,
		Sort:      opts.DefaultSort,
		Direction: directionAsc,
	}
	if p.Limit <= 0 || p.Limit > opts.MaxLimit {
		p.Limit = opts.MaxLimit
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		p.Limit = min(n, opts.MaxLimit)
	}
	if s := q.Get("sort"); slices.Contains(opts.SortFields, s) {
		p.Sort = s
	}
	if q.Get("direction") == directionDesc {
		p.Direction = directionDesc
	}

	return p
}

// Page describes one page of a result set and builds links to its
// neighbours. Links keep the rest of the request's query string.
type Page struct {
	Params
	Count     int
	PageCount int

	path  string
	query url.Values
}

// New checks p against the total row count. Page 1 is always valid, even
// for an empty result set.
func New(r *http.Request, p Params, count int) (Page, error) {
	pageCount := 1
	if count > 0 {
		pageCount = (count + p.Limit - 1) / p.Limit
	}
	if p.Page > pageCount {
		return Page{}, ErrPageOutOfRange
	}

	return Page{
		Params:    p,
		Count:     count,
		PageCount: pageCount,
		path:      r.URL.Path,
		query:     r.URL.Query(),
	}, nil
}

func (p Page) HasNext() bool { return p.Page < p.PageCount }
func (p Page) HasPrev() bool { return p.Page > 1 }
func (p Page) Next() int     { return p.Page + 1 }
func (p Page) Prev() int     { return p.Page - 1 }

// CurrentCount is the number of rows shown on this page.
func (p Page) CurrentCount() int {
	remaining := p.Count - p.Offset()
	return max(0, min(p.Limit, remaining))
}

// Start and End are the 1-based row numbers shown on this page.
func (p Page) Start() int {
	if p.CurrentCount() == 0 {
		return 0
	}
	return p.Offset() + 1
}

func (p Page) End() int {
	return p.Offset() + p.CurrentCount()
}

// URL links to page n with the same filters, sort and limit.
func (p Page) URL(n int) string {
	q := cloneValues(p.query)
	if n <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	return p.build(q)
}

func (p Page) NextURL() string  { return p.URL(p.Next()) }
func (p Page) PrevURL() string  { return p.URL(p.Prev()) }
func (p Page) FirstURL() string { return p.URL(1) }
func (p Page) LastURL() string  { return p.URL(p.PageCount) }

// SortURL links to the first page sorted by field. Sorting by the current
// field again flips the direction.
func (p Page) SortURL(field string) string {
	q := cloneValues(p.query)
	q.Del("page")
	dir := directionAsc
	if p.IsSortedBy(field) && p.Direction == directionAsc {
		dir = directionDesc
	}
	q.Set("sort", field)
	q.Set("direction", dir)
	return p.build(q)
}

func (p Page) IsSortedBy(field string) bool {
	return p.Sort == field
}

// Numbers returns the page numbers to link, centred on the current page.
func (p Page) Numbers() []int {
	first := max(1, p.Page-numbersWindow/2)
	last := min(p.PageCount, first+numbersWindow-1)
	first = max(1, last-numbersWindow+1)

	nums := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		nums = append(nums, i)
	}
	return nums
}

func (p Page) build(q url.Values) string {
	if len(q) == 0 {
		return p.path
	}
	return p.path + "?" + q.Encode()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}
