package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/upstream"
	"stock-reconciler/core/utils"
)

// ErrNotConfigured is returned when no feed URL is set.
var ErrNotConfigured = errors.New("feed url is not configured")

// sellableValues are the normalized availability values that count as sellable.
var sellableValues = map[string]bool{
	"in stock":  true,
	"in_stock":  true,
	"instock":   true,
	"available": true,
}

// Client reads the public availability feed.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a feed client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: upstream.NewHTTPClient(cfg.TimeoutSeconds)}
}

// FetchSnapshot downloads the whole feed in one request.
func (c *Client) FetchSnapshot(ctx context.Context) ([]reconcile.FeedRecord, error) {
	if c.cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	req, err := upstream.NewJSONRequest(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := upstream.Do(c.http, req, &items); err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	records := make([]reconcile.FeedRecord, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(field(item, "id", "Id"))
		if key == "" {
			continue
		}
		records = append(records, reconcile.FeedRecord{
			Key:      key,
			Sellable: IsSellable(field(item, "availability", "Availability")),
			Title:    field(item, "title", "Title"),
			Link:     field(item, "link", "Link"),
		})
	}
	return records, nil
}

// IsSellable reports whether an availability value means the item can be bought.
func IsSellable(availability string) bool {
	return sellableValues[strings.ToLower(strings.TrimSpace(availability))]
}

// field returns the first present, non-nil value among the candidate names.
func field(item map[string]any, names ...string) string {
	for _, name := range names {
		v, ok := item[name]
		if !ok || v == nil {
			continue
		}
		return utils.ToString(v)
	}
	return ""
}
