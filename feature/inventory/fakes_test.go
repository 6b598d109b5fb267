package inventory

import (
	"context"
	"errors"
	"sync"

	"stock-reconciler/core/reconcile"
)

type fakeFeed struct {
	records []reconcile.FeedRecord
}

func (f *fakeFeed) FetchSnapshot(context.Context) ([]reconcile.FeedRecord, error) {
	return f.records, nil
}

type fakeCatalog struct {
	quantities map[string]int
}

func (f *fakeCatalog) Lookup(_ context.Context, key string) (*reconcile.CatalogRecord, error) {
	qty, ok := f.quantities[key]
	if !ok {
		return nil, nil
	}
	return &reconcile.CatalogRecord{Key: key, Name: "Product " + key, Quantity: qty}, nil
}

type fakePrimary struct {
	mu       sync.Mutex
	onHand   map[string]int
	authErr  error
	requests int
}

func (f *fakePrimary) Authenticate(context.Context) (reconcile.PrimarySession, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f, nil
}

func (f *fakePrimary) OnHand(_ context.Context, _, key string) (int, bool, error) {
	f.mu.Lock()
	f.requests++
	f.mu.Unlock()
	qty, ok := f.onHand[key]
	return qty, ok, nil
}

func (f *fakePrimary) BulkOnHand(context.Context, string, []string) (map[string]int, error) {
	return nil, errors.New("bulk not supported")
}

func (f *fakePrimary) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}
