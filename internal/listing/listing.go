// Package listing filters, sorts and paginates an already-fetched collection
// the way every dashboard list page does.
package listing

import (
	"sort"
	"strings"
)

const DefaultPageSize = 10

type Sort string

const (
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// ParseSort accepts "asc" or "desc" in any case and falls back to asc.
func ParseSort(s string) Sort {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

func (s Sort) Toggle() Sort {
	if s == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// View is the page-local selection: tab, sort direction and 1-indexed page.
type View struct {
	Tab  string `json:"tab"`
	Sort Sort   `json:"sort"`
	Page int    `json:"page"`
}

// WithTab selects a tab and starts over at page 1.
func (v View) WithTab(tab string) View {
	v.Tab = tab
	v.Page = 1
	return v
}

func (v View) WithPage(page int) View {
	v.Page = page
	return v
}

func (v View) ToggleSort() View {
	v.Sort = v.Sort.Toggle()
	return v
}

// IsAllTab reports whether tab clears the filter. Every page labels that
// tab with a leading "All".
func IsAllTab(tab string) bool {
	t := strings.TrimSpace(tab)
	return t == "" || strings.HasPrefix(strings.ToLower(t), "all")
}

// Spec describes how one collection is filtered and sorted.
type Spec[T any] struct {
	Tabs     []string
	Match    func(item T, tab string) bool
	Verified func(item T) bool
}

// Result is one rendered page plus the figures the pagination control needs.
type Result[T any] struct {
	Items      []T      `json:"items"`
	View       View     `json:"view"`
	Tabs       []string `json:"tabs"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
	Counts     Counts   `json:"counts"`
}

// Counts are the summary cards over the unfiltered collection.
type Counts struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
}

// Apply runs filter, then sort, then pagination. Pages outside
// [1, TotalPages] are clamped; an empty result is page 1 of 0.
func Apply[T any](items []T, v View, spec Spec[T], pageSize int) Result[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if v.Sort == "" {
		v.Sort = SortAsc
	}

	filtered := Filter(items, v.Tab, spec.Match)
	SortByVerified(filtered, v.Sort, spec.Verified)

	totalPages := TotalPages(len(filtered), pageSize)
	v.Page = Clamp(v.Page, totalPages)

	return Result[T]{
		Items:      Paginate(filtered, v.Page, pageSize),
		View:       v,
		Tabs:       spec.Tabs,
		Total:      len(filtered),
		TotalPages: totalPages,
		Counts:     Count(items, spec.Verified),
	}
}

// Filter returns a new slice with the items matching tab, preserving order.
func Filter[T any](items []T, tab string, match func(T, string) bool) []T {
	out := make([]T, 0, len(items))
	if IsAllTab(tab) || match == nil {
		return append(out, items...)
	}
	tab = strings.TrimSpace(tab)
	for _, item := range items {
		if match(item, tab) {
			out = append(out, item)
		}
	}
	return out
}

// SortByVerified orders items in place by the verification flag as 0/1.
// asc puts unverified first. Equal keys keep their relative order.
func SortByVerified[T any](items []T, dir Sort, verified func(T) bool) {
	if verified == nil {
		return
	}
	key := func(i int) int {
		if verified(items[i]) {
			return 1
		}
		return 0
	}
	sort.SliceStable(items, func(i, j int) bool {
		if dir == SortDesc {
			return key(i) > key(j)
		}
		return key(i) < key(j)
	})
}

func TotalPages(n, pageSize int) int {
	if n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

func Clamp(page, totalPages int) int {
	if page < 1 || totalPages == 0 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns items [(page-1)*size, min(page*size, len)).
func Paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func Count[T any](items []T, verified func(T) bool) Counts {
	c := Counts{Total: len(items)}
	if verified == nil {
		c.Unverified = len(items)
		return c
	}
	for _, item := range items {
		if verified(item) {
			c.Verified++
		}
	}
	c.Unverified = c.Total - c.Verified
	return c
}
