package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-reconciler/core/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_MatchesVariantSKU(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"products":[
			{"sku":"P1","productName":"Chair XL","url":"/p/xl","variant":{"sku":"A1-XL","inventoryQuantity":9}},
			{"sku":"P1","productName":"Chair","url":"/p/chair","variant":{"sku":"A1","inventoryQuantity":4}}
		]}`))
	}))
	defer srv.Close()

	rec, err := NewClient(Config{SearchURL: srv.URL + "/search", ApiKey: "secret"}).Lookup(context.Background(), "A1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "A1", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Chair", rec.Name)
	assert.Equal(t, "/p/chair", rec.URL)
	assert.Equal(t, 4, rec.Quantity)
}

func TestLookup_NoMatchIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"variant":{"sku":"OTHER","inventoryQuantity":3}}]}`))
	}))
	defer srv.Close()

	rec, err := NewClient(Config{SearchURL: srv.URL}).Lookup(context.Background(), "A1")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestLookup_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "BAD" {
			_, _ = w.Write([]byte(`<html>`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	client := NewClient(Config{SearchURL: srv.URL})

	_, err := client.Lookup(context.Background(), "A1")
	var se *upstream.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)

	_, err = client.Lookup(context.Background(), "BAD")
	assert.ErrorIs(t, err, upstream.ErrMalformed)
}
