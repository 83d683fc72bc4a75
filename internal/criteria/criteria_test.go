package criteria_test

import (
	"reflect"
	"testing"

	"github.com/johnwards/storefront/internal/criteria"
	"github.com/johnwards/storefront/internal/domain"
)

func TestBuildOverwritesDefaults(t *testing.T) {
	defaults := domain.Criteria{"limit": 24, "order": "name-asc", "p": 1}
	got := criteria.Build(defaults, domain.Criteria{"order": "price-desc", "search": "shoes"})

	want := domain.Criteria{"limit": 24, "order": "price-desc", "p": 1, "search": "shoes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %#v, want %#v", got, want)
	}
}

func TestBuildMergesNestedRecursively(t *testing.T) {
	defaults := domain.Criteria{
		"associations": map[string]any{
			"cover":    map[string]any{"limit": 1},
			"children": true,
		},
	}
	got := criteria.Build(defaults, domain.Criteria{
		"associations": map[string]any{
			"cover": map[string]any{"sort": "position"},
		},
	})

	want := domain.Criteria{
		"associations": map[string]any{
			"cover":    map[string]any{"limit": 1, "sort": "position"},
			"children": true,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %#v, want %#v", got, want)
	}
}

func TestBuildScalarReplacesMap(t *testing.T) {
	defaults := domain.Criteria{"price": map[string]any{"min": 1, "max": 2}}
	got := criteria.Build(defaults, domain.Criteria{"price": "none"})

	if got["price"] != "none" {
		t.Errorf("price = %#v, want %q", got["price"], "none")
	}
}

func TestBuildSlicesAreReplaced(t *testing.T) {
	defaults := domain.Criteria{"manufacturer": []any{"a", "b"}}
	got := criteria.Build(defaults, domain.Criteria{"manufacturer": []any{"c"}})

	want := []any{"c"}
	if !reflect.DeepEqual(got["manufacturer"], want) {
		t.Errorf("manufacturer = %#v, want %#v", got["manufacturer"], want)
	}
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	nested := map[string]any{"min": 1}
	defaults := domain.Criteria{"price": nested, "limit": 10}
	override := domain.Criteria{"price": map[string]any{"max": 9}}

	got := criteria.Build(defaults, override)
	got["limit"] = 99
	got["price"].(map[string]any)["min"] = 42

	if defaults["limit"] != 10 {
		t.Errorf("defaults limit changed to %v", defaults["limit"])
	}
	if nested["min"] != 1 {
		t.Errorf("defaults nested min changed to %v", nested["min"])
	}
	if _, ok := nested["max"]; ok {
		t.Error("override leaked into defaults")
	}
}

func TestBuildNilInputs(t *testing.T) {
	if got := criteria.Build(nil, nil); len(got) != 0 {
		t.Errorf("Build(nil, nil) = %#v, want empty", got)
	}
	got := criteria.Build(nil, domain.Criteria{"p": 2})
	if got["p"] != 2 {
		t.Errorf("p = %v, want 2", got["p"])
	}
}

func TestMergeLaterLayersWin(t *testing.T) {
	got := criteria.Merge(
		domain.Criteria{"limit": 10, "order": "a"},
		domain.Criteria{"order": "b", "p": 1},
		domain.Criteria{"p": 3},
	)
	want := domain.Criteria{"limit": 10, "order": "b", "p": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %#v, want %#v", got, want)
	}
}
