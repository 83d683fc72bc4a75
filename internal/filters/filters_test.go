package filters_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/filters"
)

func TestCurrentDropsReservedAndFalsyKeys(t *testing.T) {
	got := filters.Current(
		map[string]any{
			"navigationId":  "cat-1",
			"manufacturer":  []any{"m1"},
			"rating":        nil,
			"shipping-free": false,
			"search":        "",
		},
		domain.Criteria{"p": "2", "order": "price-asc"},
	).Map()

	want := map[string]any{
		"manufacturer": []any{"m1"},
		"order":        "price-asc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Current = %#v, want %#v", got, want)
	}
}

func TestCurrentFlattensPrice(t *testing.T) {
	got := filters.Current(map[string]any{
		"price": map[string]any{"min": 5, "max": 20},
	}, nil)

	m := got.Map()
	if m["min-price"] != 5 {
		t.Errorf("min-price = %#v, want 5", m["min-price"])
	}
	if m["max-price"] != 20 {
		t.Errorf("max-price = %#v, want 20", m["max-price"])
	}
	if _, ok := m["price"]; ok {
		t.Error("price key should be flattened away")
	}
}

func TestCurrentZeroPriceBoundsOmitted(t *testing.T) {
	got := filters.Current(map[string]any{
		"price": map[string]any{"min": 0, "max": 50},
	}, nil)

	if got.MinPrice != nil {
		t.Errorf("MinPrice = %+v, want nil", *got.MinPrice)
	}
	if got.MaxPrice == nil || got.MaxPrice.Value != 50 {
		t.Errorf("MaxPrice = %v, want 50", got.MaxPrice)
	}
}

func TestCurrentQueryPriceKeysWin(t *testing.T) {
	got := filters.Current(
		map[string]any{"price": map[string]any{"min": 5, "max": 20}},
		domain.Criteria{"min-price": "8"},
	)

	if got.MinPrice == nil || got.MinPrice.Value != 8 {
		t.Errorf("MinPrice = %+v, want 8", got.MinPrice)
	}
	if got.MaxPrice == nil || got.MaxPrice.Value != 20 {
		t.Errorf("MaxPrice = %+v, want 20", got.MaxPrice)
	}
}

func TestCurrentPriceKeysKeepQueryValues(t *testing.T) {
	got := filters.Current(nil, domain.Criteria{
		"min-price": "5",
		"max-price": json.Number("19.90"),
	}).Map()

	want := map[string]any{"min-price": "5", "max-price": json.Number("19.90")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Current = %#v, want %#v", got, want)
	}
}

func TestCurrentQueryOverridesListing(t *testing.T) {
	got := filters.Current(
		map[string]any{"manufacturer": "a"},
		domain.Criteria{"manufacturer": "b"},
	)
	if got.Extra["manufacturer"] != "b" {
		t.Errorf("manufacturer = %v, want b", got.Extra["manufacturer"])
	}
}

func TestCurrentEmpty(t *testing.T) {
	got := filters.Current(nil, nil).Map()
	if len(got) != 0 {
		t.Errorf("Current(nil, nil) = %#v, want empty", got)
	}
}

func TestAppliedFiltersMarshalJSON(t *testing.T) {
	minPrice := &domain.PriceBound{Value: 5, Raw: 5}
	b, err := json.Marshal(domain.AppliedFilters{MinPrice: minPrice, Extra: map[string]any{"order": "x"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"min-price":5,"order":"x"}` {
		t.Errorf("json = %s", b)
	}
}

func TestExtract(t *testing.T) {
	properties := `{"entities":[
		{"id":"g-color","name":"Color","options":[{"id":"o-red","name":"Red","colorHexCode":"#f00"}]},
		{"id":"g-size","name":"Size","translated":{"name":"Größe"},"options":[]}
	]}`
	aggs := domain.Aggregations{
		"manufacturer":  json.RawMessage(`{"entities":[{"id":"m1","name":"Acme","translated":{"name":"Acme Inc"}},{"id":"m2","name":"Globex"}]}`),
		"price":         json.RawMessage(`{"min":"9.99","max":120,"avg":40}`),
		"shipping-free": json.RawMessage(`{"max":"1"}`),
		"properties":    json.RawMessage(properties),
		"unknown":       json.RawMessage(`{"buckets":[]}`),
	}

	got := filters.Extract(aggs)

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5: %#v", len(got), got)
	}

	if got[0].Code != "manufacturer" || got[0].Kind != domain.FilterEntity {
		t.Errorf("filter 0 = %+v, want manufacturer entity", got[0])
	}
	if len(got[0].Options) != 2 || got[0].Options[0].Label != "Acme Inc" || got[0].Options[1].Label != "Globex" {
		t.Errorf("manufacturer options = %+v", got[0].Options)
	}

	if got[1].Code != "price" || got[1].Kind != domain.FilterRange {
		t.Errorf("filter 1 = %+v, want price range", got[1])
	}
	if got[1].Min == nil || *got[1].Min != 9.99 || got[1].Max == nil || *got[1].Max != 120 {
		t.Errorf("price bounds = %v..%v", got[1].Min, got[1].Max)
	}

	if got[2].Code != "g-color" || got[2].Kind != domain.FilterProperty || got[2].Label != "Color" {
		t.Errorf("filter 2 = %+v, want color property", got[2])
	}
	if len(got[2].Options) != 1 || got[2].Options[0].Color != "#f00" {
		t.Errorf("color options = %+v", got[2].Options)
	}
	if got[3].Code != "g-size" || got[3].Label != "Größe" {
		t.Errorf("filter 3 = %+v, want size property", got[3])
	}

	if got[4].Code != "shipping-free" || got[4].Kind != domain.FilterMax {
		t.Errorf("filter 4 = %+v, want shipping-free max", got[4])
	}
}

func TestExtractEmpty(t *testing.T) {
	got := filters.Extract(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Extract(nil) = %#v, want empty slice", got)
	}
}
