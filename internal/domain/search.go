package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Well-known criteria keys understood by the commerce Store API.
const (
	CriteriaPage         = "p"
	CriteriaLimit        = "limit"
	CriteriaOrder        = "order"
	CriteriaSearch       = "search"
	CriteriaNavigationID = "navigationId"
	CriteriaPrice        = "price"
	CriteriaMinPrice     = "min-price"
	CriteriaMaxPrice     = "max-price"
)

// Criteria is a set of search parameters keyed by the name the commerce API
// expects. Values are opaque: nested maps are merged key by key, everything
// else is replaced wholesale.
type Criteria map[string]any

// Clone returns a deep copy of c. Nested Criteria, maps and slices are copied
// so the result can be mutated without touching c.
func (c Criteria) Clone() Criteria {
	if c == nil {
		return Criteria{}
	}
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies maps and slices found in criteria values; scalars are
// returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case Criteria:
		return t.Clone()
	case map[string]any:
		return map[string]any(Criteria(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Int returns the value at key as an int. Numbers decoded from JSON, ints and
// numeric strings are accepted.
func (c Criteria) Int(key string) (int, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// String returns the value at key formatted as a string, or "" when absent.
func (c Criteria) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, "|")
	default:
		return fmt.Sprint(t)
	}
}

// Number converts common numeric representations to float64.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ListingResult is one page of a listing as returned by a search call.
// A zero Page or Limit means the backend did not report one.
type ListingResult[T any] struct {
	Elements       []T            `json:"elements"`
	Total          int            `json:"total"`
	Page           int            `json:"page,omitempty"`
	Limit          int            `json:"limit,omitempty"`
	Sorting        string         `json:"sorting,omitempty"`
	Sortings       Sortings       `json:"sortings"`
	Aggregations   Aggregations   `json:"aggregations,omitempty"`
	CurrentFilters map[string]any `json:"currentFilters,omitempty"`
}

// Sorting is a sort order the backend offers for a listing.
type Sorting struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SortingsShape tags which API generation produced a Sortings value.
type SortingsShape string

const (
	// SortingsList is the array form ("availableSortings").
	SortingsList SortingsShape = "list"
	// SortingsLegacy is the older object-of-sortings form ("sortings"),
	// stored in response order.
	SortingsLegacy SortingsShape = "legacy"
)

// Sortings holds the available sort orders in whichever shape the backend
// produced them.
type Sortings struct {
	Shape  SortingsShape `json:"shape,omitempty"`
	List   []Sorting     `json:"list,omitempty"`
	Legacy []Sorting     `json:"legacy,omitempty"`
}

// Orders returns the available sort orders regardless of shape.
func (s Sortings) Orders() []Sorting {
	if s.Shape == SortingsLegacy {
		return s.Legacy
	}
	return s.List
}

// Aggregations is the backend's facet data, keyed by aggregation name. The
// payload of each entry is left undecoded; see package filters.
type Aggregations map[string]json.RawMessage
