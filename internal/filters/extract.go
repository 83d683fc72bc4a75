// Package filters derives listing filters from backend aggregations and
// normalizes the filters currently applied to a listing.
package filters

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/johnwards/storefront/internal/domain"
)

// propertiesAggregation holds property groups, each of which becomes its own
// filter.
const propertiesAggregation = "properties"

type aggregation struct {
	Entities []entity   `json:"entities"`
	Min      flexNumber `json:"min"`
	Max      flexNumber `json:"max"`
}

type entity struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	ColorHexCode string      `json:"colorHexCode"`
	Translated   translation `json:"translated"`
	Options      []entity    `json:"options"`
}

type translation struct {
	Name string `json:"name"`
}

func (e entity) label() string {
	if e.Translated.Name != "" {
		return e.Translated.Name
	}
	return e.Name
}

// flexNumber accepts a JSON number, a numeric string or null.
type flexNumber struct {
	Value *float64
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n.Value = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

// Extract turns aggregations into listing filters, ordered by aggregation
// name. Entity aggregations become option filters, the properties
// aggregation becomes one filter per property group, stats aggregations
// become ranges and max-only aggregations become toggles. Aggregations of any
// other shape are skipped.
func Extract(aggs domain.Aggregations) []domain.ListingFilter {
	if len(aggs) == 0 {
		return []domain.ListingFilter{}
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]domain.ListingFilter, 0, len(names))
	for _, name := range names {
		var agg aggregation
		if err := json.Unmarshal(aggs[name], &agg); err != nil {
			continue
		}

		switch {
		case name == propertiesAggregation:
			for _, group := range agg.Entities {
				out = append(out, domain.ListingFilter{
					Code:    group.ID,
					Label:   group.label(),
					Kind:    domain.FilterProperty,
					Options: options(group.Options),
				})
			}
		case agg.Entities != nil:
			out = append(out, domain.ListingFilter{
				Code:    name,
				Label:   name,
				Kind:    domain.FilterEntity,
				Options: options(agg.Entities),
			})
		case agg.Min.Value != nil && agg.Max.Value != nil:
			out = append(out, domain.ListingFilter{
				Code:  name,
				Label: name,
				Kind:  domain.FilterRange,
				Min:   agg.Min.Value,
				Max:   agg.Max.Value,
			})
		case agg.Max.Value != nil:
			out = append(out, domain.ListingFilter{
				Code:  name,
				Label: name,
				Kind:  domain.FilterMax,
				Max:   agg.Max.Value,
			})
		}
	}
	return out
}

func options(entities []entity) []domain.FilterOption {
	out := make([]domain.FilterOption, 0, len(entities))
	for _, e := range entities {
		out = append(out, domain.FilterOption{
			ID:    e.ID,
			Label: e.label(),
			Color: e.ColorHexCode,
		})
	}
	return out
}
