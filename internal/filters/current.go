package filters

import (
	"encoding/json"
	"math"

	"github.com/johnwards/storefront/internal/domain"
)

// Current merges the filters reported with a listing and the navigation
// query (query keys win) into the filters in effect. Falsy values and the
// navigationId and page keys are dropped. A price object is flattened into
// the typed price range; explicit min-price/max-price keys take precedence
// over it. Price bounds keep their original value for Map.
func Current(listingFilters map[string]any, query domain.Criteria) domain.AppliedFilters {
	merged := make(map[string]any, len(listingFilters)+len(query))
	for k, v := range listingFilters {
		merged[k] = v
	}
	for k, v := range query {
		merged[k] = v
	}

	applied := domain.AppliedFilters{Extra: map[string]any{}}

	if price, ok := asMap(merged[domain.CriteriaPrice]); ok {
		applied.MinPrice = priceBound(price["min"])
		applied.MaxPrice = priceBound(price["max"])
	}

	for k, v := range merged {
		if isFalsy(v) {
			continue
		}
		switch k {
		case domain.CriteriaNavigationID, domain.CriteriaPage:
			continue
		case domain.CriteriaPrice:
			if _, ok := asMap(v); ok {
				continue
			}
		case domain.CriteriaMinPrice:
			if f := priceBound(v); f != nil {
				applied.MinPrice = f
				continue
			}
		case domain.CriteriaMaxPrice:
			if f := priceBound(v); f != nil {
				applied.MaxPrice = f
				continue
			}
		}
		applied.Extra[k] = v
	}
	return applied
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case domain.Criteria:
		return t, true
	default:
		return nil, false
	}
}

func priceBound(v any) *domain.PriceBound {
	if isFalsy(v) {
		return nil
	}
	f, ok := domain.Number(v)
	if !ok {
		return nil
	}
	return &domain.PriceBound{Value: f, Raw: v}
}

// isFalsy reports whether v carries no filter value: nil, false, an empty
// string or a zero number. Empty collections count as set.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0 || math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}
