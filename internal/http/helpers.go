package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
)

// parseFilter builds a transaction filter from the optional type,
// category, from and to query parameters.
func parseFilter(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()
	var f core.Filter

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		kind := core.Kind(v)
		if kind != core.Income && kind != core.Expense {
			return core.Filter{}, fmt.Errorf("invalid type %q", v)
		}
		f.Kind = kind
	}
	f.Category = strings.TrimSpace(q.Get("category"))

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d := core.Date(v)
		if err := d.Validate(); err != nil {
			return core.Filter{}, fmt.Errorf("invalid from date %q", v)
		}
		f.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d := core.Date(v)
		if err := d.Validate(); err != nil {
			return core.Filter{}, fmt.Errorf("invalid to date %q", v)
		}
		f.To = d
	}

	return f, nil
}

// parseTop reads the optional top query parameter, falling back to the
// default breakdown size.
func parseTop(r *http.Request) int {
	if v := strings.TrimSpace(r.URL.Query().Get("top")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return core.DefaultTopCategories
}
