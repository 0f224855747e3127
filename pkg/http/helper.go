package http

import (
	"net/http"

	"storefront/pkg/pagination"
)

// ExtractWindow reads page and limit from the query string. Bad values are
// coerced rather than rejected; the total is filled in later with WithTotal.
func ExtractWindow(r *http.Request) pagination.Window {
	query := r.URL.Query()
	return pagination.Parse(query.Get("page"), query.Get("limit"), 0)
}

// QueryFlag reports whether a boolean filter is switched on. Only "true"
// and "1" count; anything else leaves the filter off.
func QueryFlag(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		return true
	}
	return false
}
