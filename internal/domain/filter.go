package domain

import "encoding/json"

// FilterKind classifies a ListingFilter by how it is rendered and applied.
type FilterKind string

const (
	FilterEntity   FilterKind = "entity"
	FilterProperty FilterKind = "property"
	FilterRange    FilterKind = "range"
	FilterMax      FilterKind = "max"
)

// ListingFilter is a filter a listing can be narrowed by, derived from the
// backend's aggregations.
type ListingFilter struct {
	Code    string         `json:"code"`
	Label   string         `json:"label"`
	Kind    FilterKind     `json:"kind"`
	Options []FilterOption `json:"options,omitempty"`
	Min     *float64       `json:"min,omitempty"`
	Max     *float64       `json:"max,omitempty"`
}

// FilterOption is one selectable value of an entity or property filter.
type FilterOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// AppliedFilters are the filters currently in effect for a listing. The price
// range is typed; every other filter key passes through in Extra unchanged.
type AppliedFilters struct {
	MinPrice *PriceBound
	MaxPrice *PriceBound
	Extra    map[string]any
}

// PriceBound is one end of the applied price range. Value is the parsed
// number and Raw the value exactly as the listing or query carried it.
type PriceBound struct {
	Value float64
	Raw   any
}

// Map returns the flat key/value form, with the raw price bounds as
// "min-price" and "max-price".
func (f AppliedFilters) Map() map[string]any {
	out := make(map[string]any, len(f.Extra)+2)
	for k, v := range f.Extra {
		out[k] = v
	}
	if f.MinPrice != nil {
		out[CriteriaMinPrice] = f.MinPrice.Raw
	}
	if f.MaxPrice != nil {
		out[CriteriaMaxPrice] = f.MaxPrice.Raw
	}
	return out
}

// MarshalJSON encodes the flat form returned by Map.
func (f AppliedFilters) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Map())
}
