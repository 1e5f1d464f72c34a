package api

import (
	"net/http"
	"strconv"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/shopspring/decimal"
)

// parsePage reads limit/offset from the query string. Bad values fall back
// to the defaults rather than erroring.
func parsePage(r *http.Request) database.Page {
	var page database.Page
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Offset = n
		}
	}
	return page
}

// queryBool returns a pointer for three-state filters: nil when the
// parameter is absent or unparseable.
func queryBool(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// queryFlag is for filters that only switch on.
func queryFlag(r *http.Request, name string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && b
}

// queryDecimal parses a decimal query parameter, nil when absent or invalid.
func queryDecimal(r *http.Request, name string) *decimal.Decimal {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

// searchParams flattens the query string for echoing back in search
// responses. Repeated parameters keep their first value.
func searchParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
