package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/upstream"
)

// ErrNotConfigured is returned when no search URL is set.
var ErrNotConfigured = errors.New("catalog search url is not configured")

type searchResponse struct {
	Products []product `json:"products"`
}

type product struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"productName"`
	URL         string  `json:"url"`
	Variant     variant `json:"variant"`
}

type variant struct {
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventoryQuantity"`
}

// Client looks up storefront stock by key.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a catalog client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: upstream.NewHTTPClient(cfg.TimeoutSeconds)}
}

// Lookup searches for key and returns the product whose variant SKU matches
// exactly. A search without such a variant yields nil and no error.
func (c *Client) Lookup(ctx context.Context, key string) (*reconcile.CatalogRecord, error) {
	if c.cfg.SearchURL == "" {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(c.cfg.SearchURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", key)
	u.RawQuery = q.Encode()

	req, err := upstream.NewJSONRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.ApiKey != "" {
		upstream.BearerAuth(req, c.cfg.ApiKey)
	}

	var resp searchResponse
	if err := upstream.Do(c.http, req, &resp); err != nil {
		return nil, err
	}

	for _, p := range resp.Products {
		if strings.TrimSpace(p.Variant.SKU) != key {
			continue
		}
		qty := p.Variant.InventoryQuantity
		if qty < 0 {
			qty = 0
		}
		return &reconcile.CatalogRecord{
			Key:      key,
			Name:     p.ProductName,
			URL:      p.URL,
			Quantity: qty,
		}, nil
	}
	return nil, nil
}
