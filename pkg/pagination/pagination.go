// Package pagination derives list windows from raw, possibly invalid input.
//
// Nothing here returns an error. Every input is coerced to the nearest valid
// value (clamp-or-default), and callers rely on those defaults.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"storefront/pkg/sanitizer"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

type Window struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
	Skip        int64 `json:"skip"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Info is the pagination block list endpoints return next to data.
type Info struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Calculate builds a window. A page below 1 becomes 1, a zero limit means
// "not given" and becomes DefaultLimit, and any other limit is clamped into
// [MinLimit, MaxLimit]. Page is never clamped against TotalPages: asking past
// the end yields an empty window with HasNextPage false.
func Calculate(page, limit int, total int64) Window {
	page = max(DefaultPage, page)
	if limit == 0 {
		limit = DefaultLimit
	}
	limit = sanitizer.ClampInt(limit, MinLimit, MaxLimit)
	total = max(0, total)

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return Window{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		Skip:        skip(page, limit),
		HasNextPage: int64(page) < totalPages,
		HasPrevPage: page > 1,
	}
}

func skip(page, limit int) int64 {
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return int64(page-1) * int64(limit)
}

// Parse coerces raw query values and calculates the window.
func Parse(pageRaw, limitRaw string, total int64) Window {
	return Calculate(CoercePage(pageRaw), CoerceLimit(limitRaw), total)
}

// CoercePage reads the leading integer of raw. Missing, unreadable and
// non-positive values become DefaultPage.
func CoercePage(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return DefaultPage
	}
	return n
}

// CoerceLimit reads the leading integer of raw. Missing, unreadable and zero
// values become DefaultLimit; the rest is clamped into [MinLimit, MaxLimit].
func CoerceLimit(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n == 0 {
		return DefaultLimit
	}
	return sanitizer.ClampInt(n, MinLimit, MaxLimit)
}

// CoerceOptionalLimit is CoerceLimit for endpoints with their own default:
// missing, unreadable and zero values come back as 0 so the caller can apply
// it.
func CoerceOptionalLimit(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n == 0 {
		return 0
	}
	return sanitizer.ClampInt(n, MinLimit, MaxLimit)
}

func (w Window) WithTotal(total int64) Window {
	return Calculate(w.Page, w.Limit, total)
}

func (w Window) Info() Info {
	return Info{
		Page:       w.Page,
		Limit:      w.Limit,
		Total:      w.Total,
		TotalPages: w.TotalPages,
	}
}

// leadingInt parses an optional sign followed by digits at the start of s,
// ignoring whatever follows ("12abc" is 12, "2.9" is 2). Values beyond the
// int range saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}
