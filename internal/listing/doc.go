// Package listing reconciles a paginated, filterable listing with the
// navigation query it is shown under.
//
// A Reconciler owns no state of its own beyond two loading flags. Results
// live in a shared store.SlotStore under the reconciler's listing key: the
// initial slot holds the baseline result and the applied slot holds the
// result of the latest search or load-more. The current listing is the
// applied result when present, else the initial one.
//
//	slots := store.NewSlots[domain.Product](store.NewMemoryBackend())
//	nav := navigation.NewMemory(nil)
//	r := listing.New("category", client.CategoryListingFunc(), slots, nav,
//	    listing.WithDefaults(domain.Criteria{"limit": 24}),
//	)
//	if err := r.InitSearch(ctx, domain.Criteria{"navigationId": id}); err != nil {
//	    return err
//	}
//	view, err := r.View(ctx)
//
// Overlapping calls of the same action are not serialized: the response that
// resolves last determines the stored result. WithStaleResponseDiscard drops
// responses that were superseded by a later call of the same action instead.
package listing
