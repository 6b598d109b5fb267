package secondary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/upstream"
)

// ErrNotConfigured is returned when the selected source lacks its settings.
var ErrNotConfigured = errors.New("secondary warehouse source is not configured")

type lookupRequest struct {
	SKUs []string `json:"skus"`
}

type lookupResponse struct {
	Items []struct {
		SKU       string `json:"sku"`
		OnHand    int    `json:"onHand"`
		InOrder   int    `json:"inOrder"`
		Physical  int    `json:"physical"`
		Stopped   int    `json:"stopped"`
		Allocated int    `json:"allocated"`
	} `json:"items"`
}

// APISource reads balances from the warehouse lookup endpoint.
type APISource struct {
	cfg  Config
	http *http.Client
}

// NewAPISource creates a live API source.
func NewAPISource(cfg Config) *APISource {
	return &APISource{cfg: cfg, http: upstream.NewHTTPClient(cfg.TimeoutSeconds)}
}

func (s *APISource) Name() string { return KindAPI }

// Snapshot posts keys in batches and normalizes every returned item.
func (s *APISource) Snapshot(ctx context.Context, keys []string) (map[string]reconcile.SecondaryRecord, error) {
	if s.cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	out := make(map[string]reconcile.SecondaryRecord, len(keys))
	for i, batch := range chunk(keys, s.cfg.batchSize()) {
		req, err := upstream.NewJSONRequest(ctx, http.MethodPost, s.cfg.URL, lookupRequest{SKUs: batch})
		if err != nil {
			return nil, err
		}
		if s.cfg.Token != "" {
			upstream.BearerAuth(req, s.cfg.Token)
		}

		var resp lookupResponse
		if err := upstream.Do(s.http, req, &resp); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}
		for _, item := range resp.Items {
			key := strings.TrimSpace(item.SKU)
			if key == "" {
				continue
			}
			out[key] = reconcile.SecondaryRecord{
				Key:       key,
				OnHand:    item.OnHand,
				InOrder:   item.InOrder,
				Physical:  item.Physical,
				Stopped:   item.Stopped,
				Allocated: item.Allocated,
			}
		}
	}
	return out, nil
}
