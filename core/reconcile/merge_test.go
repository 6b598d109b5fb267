package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_DefaultsMissingSignals(t *testing.T) {
	snap := Merge("A", Signals{})

	assert.Equal(t, "A", snap.Key)
	assert.Equal(t, UnknownProductName, snap.Name)
	assert.Zero(t, snap.CatalogQuantity)
	assert.Zero(t, snap.PrimaryOnHand)
	assert.Nil(t, snap.Feed)
	assert.Nil(t, snap.Secondary)
}

func TestMerge_JoinsAllSources(t *testing.T) {
	signals := Signals{
		Feed:      map[string]FeedRecord{"A": {Key: "A", Title: "Feed title", Link: "https://shop.example/a"}},
		Catalog:   map[string]*CatalogRecord{"A": {Key: "A", Name: "Chair", URL: "/p/chair", Quantity: 4}},
		Primary:   map[string]int{"A": 7},
		Secondary: map[string]SecondaryRecord{"A": {OnHand: 9, InOrder: 2}},
	}

	snap := Merge("A", signals)
	assert.Equal(t, "Chair", snap.Name)
	assert.Equal(t, "/p/chair", snap.URL)
	assert.Equal(t, 4, snap.CatalogQuantity)
	assert.Equal(t, 7, snap.PrimaryOnHand)
	require.NotNil(t, snap.Secondary)
	assert.Equal(t, "A", snap.Secondary.Key)
	assert.Equal(t, 7, snap.Secondary.Unallocated())
}

func TestMerge_CatalogMissFallsBackToFeedLink(t *testing.T) {
	signals := Signals{
		Feed:    map[string]FeedRecord{"A": {Key: "A", Title: "Feed title", Link: "https://shop.example/a"}},
		Catalog: map[string]*CatalogRecord{"A": nil},
	}

	snap := Merge("A", signals)
	assert.Equal(t, UnknownProductName, snap.Name)
	assert.Equal(t, "https://shop.example/a", snap.URL)
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"A1", "B2", "C3"}, SplitKeys(" A1, B2;C3\nA1 "))
	assert.Empty(t, SplitKeys(" , ;"))
}
