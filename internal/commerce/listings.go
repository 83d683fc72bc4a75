package commerce

import (
	"context"
	"errors"
	"net/url"

	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/listing"
)

// Endpoint labels used for errors and request metrics.
const (
	EndpointSearch         = "search"
	EndpointProductListing = "product-listing"
	EndpointOrder          = "order"
)

// ErrMissingCategory is returned by the category listing when the criteria
// carry no navigation id.
var ErrMissingCategory = errors.New("commerce: criteria carry no navigationId")

// SearchProducts runs a product search with c as the request body.
func (c *Client) SearchProducts(ctx context.Context, criteria domain.Criteria) (*domain.ListingResult[domain.Product], error) {
	var resp listingResponse[wireProduct]
	if err := c.post(ctx, EndpointSearch, "/store-api/search", body(criteria), &resp); err != nil {
		return nil, err
	}
	return toListing(&resp, c.legacy, wireProduct.toDomain)
}

// ProductListing loads the product listing of a category.
func (c *Client) ProductListing(ctx context.Context, categoryID string, criteria domain.Criteria) (*domain.ListingResult[domain.Product], error) {
	var resp listingResponse[wireProduct]
	path := "/store-api/product-listing/" + url.PathEscape(categoryID)
	if err := c.post(ctx, EndpointProductListing, path, body(criteria), &resp); err != nil {
		return nil, err
	}
	return toListing(&resp, c.legacy, wireProduct.toDomain)
}

// Orders loads the order history of the customer behind the context token.
func (c *Client) Orders(ctx context.Context, criteria domain.Criteria) (*domain.ListingResult[domain.Order], error) {
	var resp struct {
		Orders listingResponse[wireOrder] `json:"orders"`
	}
	if err := c.post(ctx, EndpointOrder, "/store-api/order", body(criteria), &resp); err != nil {
		return nil, err
	}
	return toListing(&resp.Orders, c.legacy, wireOrder.toDomain)
}

// SearchFunc adapts SearchProducts for a listing reconciler.
func (c *Client) SearchFunc() listing.SearchFunc[domain.Product] {
	return c.SearchProducts
}

// CategoryListingFunc adapts ProductListing for a listing reconciler. The
// category is taken from the navigationId criterion.
func (c *Client) CategoryListingFunc() listing.SearchFunc[domain.Product] {
	return func(ctx context.Context, criteria domain.Criteria) (*domain.ListingResult[domain.Product], error) {
		id := criteria.String(domain.CriteriaNavigationID)
		if id == "" {
			return nil, ErrMissingCategory
		}
		rest := criteria.Clone()
		delete(rest, domain.CriteriaNavigationID)
		return c.ProductListing(ctx, id, rest)
	}
}

// OrdersFunc adapts Orders for a listing reconciler.
func (c *Client) OrdersFunc() listing.SearchFunc[domain.Order] {
	return c.Orders
}

func body(c domain.Criteria) domain.Criteria {
	if c == nil {
		return domain.Criteria{}
	}
	return c
}
