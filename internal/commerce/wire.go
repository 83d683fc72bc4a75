package commerce

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/johnwards/storefront/internal/domain"
)

// listingResponse is the common envelope of product and order listings.
type listingResponse[E any] struct {
	Elements          []E                        `json:"elements"`
	Total             int                        `json:"total"`
	Page              int                        `json:"page"`
	Limit             int                        `json:"limit"`
	Sorting           string                     `json:"sorting"`
	AvailableSortings []wireSorting              `json:"availableSortings"`
	Sortings          json.RawMessage            `json:"sortings"`
	Aggregations      map[string]json.RawMessage `json:"aggregations"`
	CurrentFilters    map[string]any             `json:"currentFilters"`
}

type wireSorting struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Translated struct {
		Label string `json:"label"`
	} `json:"translated"`
}

func (s wireSorting) toDomain(key string) domain.Sorting {
	if s.Key != "" {
		key = s.Key
	}
	label := s.Translated.Label
	if label == "" {
		label = s.Label
	}
	return domain.Sorting{Key: key, Label: label}
}

type wireProduct struct {
	ID             string `json:"id"`
	ProductNumber  string `json:"productNumber"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ManufacturerID string `json:"manufacturerId"`
	Available      bool   `json:"available"`
	Stock          int    `json:"stock"`
	Translated     struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"translated"`
	Cover *struct {
		Media *struct {
			URL string `json:"url"`
		} `json:"media"`
	} `json:"cover"`
	CalculatedPrice *struct {
		UnitPrice  float64 `json:"unitPrice"`
		TotalPrice float64 `json:"totalPrice"`
		ListPrice  *struct {
			Price float64 `json:"price"`
		} `json:"listPrice"`
	} `json:"calculatedPrice"`
}

func (p wireProduct) toDomain() domain.Product {
	out := domain.Product{
		ID:             p.ID,
		ProductNumber:  p.ProductNumber,
		Name:           firstNonEmpty(p.Translated.Name, p.Name),
		Description:    firstNonEmpty(p.Translated.Description, p.Description),
		ManufacturerID: p.ManufacturerID,
		Available:      p.Available,
		Stock:          p.Stock,
	}
	if p.Cover != nil && p.Cover.Media != nil {
		out.CoverURL = p.Cover.Media.URL
	}
	if cp := p.CalculatedPrice; cp != nil {
		out.Price = &domain.Price{UnitPrice: cp.UnitPrice, TotalPrice: cp.TotalPrice}
		if cp.ListPrice != nil {
			lp := cp.ListPrice.Price
			out.Price.ListPrice = &lp
		}
	}
	return out
}

type wireOrder struct {
	ID                string  `json:"id"`
	OrderNumber       string  `json:"orderNumber"`
	OrderDateTime     string  `json:"orderDateTime"`
	AmountTotal       float64 `json:"amountTotal"`
	StateMachineState *struct {
		TechnicalName string `json:"technicalName"`
	} `json:"stateMachineState"`
}

func (o wireOrder) toDomain() domain.Order {
	out := domain.Order{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		OrderDateTime: o.OrderDateTime,
		AmountTotal:   o.AmountTotal,
	}
	if o.StateMachineState != nil {
		out.State = o.StateMachineState.TechnicalName
	}
	return out
}

// toListing maps a wire listing into the domain shape, converting each
// element with conv and tagging sortings by API generation.
func toListing[E, T any](r *listingResponse[E], legacy bool, conv func(E) T) (*domain.ListingResult[T], error) {
	out := &domain.ListingResult[T]{
		Elements:       make([]T, 0, len(r.Elements)),
		Total:          r.Total,
		Page:           r.Page,
		Limit:          r.Limit,
		Sorting:        r.Sorting,
		CurrentFilters: r.CurrentFilters,
	}
	for _, e := range r.Elements {
		out.Elements = append(out.Elements, conv(e))
	}
	if len(r.Aggregations) > 0 {
		out.Aggregations = domain.Aggregations(r.Aggregations)
	}

	if legacy {
		sortings, err := decodeLegacySortings(r.Sortings)
		if err != nil {
			return nil, err
		}
		out.Sortings = domain.Sortings{Shape: domain.SortingsLegacy, Legacy: sortings}
		return out, nil
	}

	list := make([]domain.Sorting, 0, len(r.AvailableSortings))
	for _, s := range r.AvailableSortings {
		list = append(list, s.toDomain(""))
	}
	out.Sortings = domain.Sortings{Shape: domain.SortingsList, List: list}
	return out, nil
}

// decodeLegacySortings reads the object-of-sortings form keeping the order of
// the keys as sent.
func decodeLegacySortings(raw json.RawMessage) ([]domain.Sorting, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.Sorting{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode sortings: %w", err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("decode sortings: expected object, got %v", tok)
	}

	out := []domain.Sorting{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode sortings: %w", err)
		}
		key, _ := keyTok.(string)
		var s wireSorting
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode sorting %q: %w", key, err)
		}
		out = append(out, s.toDomain(key))
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
