package primary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/upstream"
)

// ErrNotConfigured is returned when credentials or endpoints are missing.
var ErrNotConfigured = errors.New("primary warehouse is not configured")

const bulkQuery = `query InventoryPositions($first: Int!, $after: String, $location: String) {
  inventoryPositions(first: $first, after: $after, locationRef: $location) {
    edges { cursor node { productRef onHand } }
    pageInfo { hasNextPage }
  }
}`

const singleQuery = `query InventoryPosition($productRef: String!, $location: String) {
  inventoryPositions(first: 10, productRef: [$productRef], locationRef: $location) {
    edges { cursor node { productRef onHand } }
    pageInfo { hasNextPage }
  }
}`

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type positionsResponse struct {
	Data struct {
		InventoryPositions struct {
			Edges []struct {
				Cursor string `json:"cursor"`
				Node   struct {
					ProductRef string `json:"productRef"`
					OnHand     int    `json:"onHand"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"inventoryPositions"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client is the credential exchange of the primary warehouse. It holds no
// token; every call to Authenticate performs a fresh exchange.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a primary warehouse client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: upstream.NewHTTPClient(cfg.TimeoutSeconds)}
}

// Authenticate exchanges the configured credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) (reconcile.PrimarySession, error) {
	if !c.cfg.Complete() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	if c.cfg.Scope != "" {
		form.Set("scope", c.cfg.Scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var tok tokenResponse
	if err := upstream.Do(c.http, req, &tok); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token exchange: %w: empty access_token", upstream.ErrMalformed)
	}

	return &Session{cfg: c.cfg, http: c.http, token: tok.AccessToken}, nil
}

// Session performs authenticated inventory queries.
type Session struct {
	cfg   Config
	http  *http.Client
	token string
}

// OnHand sums the on-hand quantity of every position matching key.
func (s *Session) OnHand(ctx context.Context, location, key string) (int, bool, error) {
	vars := map[string]any{"productRef": key}
	if location != "" {
		vars["location"] = location
	}

	resp, err := s.query(ctx, singleQuery, vars)
	if err != nil {
		return 0, false, err
	}

	total, found := 0, false
	for _, edge := range resp.Data.InventoryPositions.Edges {
		if strings.EqualFold(edge.Node.ProductRef, key) {
			total += edge.Node.OnHand
			found = true
		}
	}
	return total, found, nil
}

// BulkOnHand walks the cursor-paginated position list. Positions for the same
// product are summed. With targets, only those keys are collected (matched
// case-insensitively) and the scan ends once all of them have been seen.
func (s *Session) BulkOnHand(ctx context.Context, location string, targets []string) (map[string]int, error) {
	want := make(map[string]string, len(targets))
	for _, t := range targets {
		want[strings.ToLower(t)] = t
	}
	seen := make(map[string]bool, len(targets))
	out := make(map[string]int)

	var cursor string
	for page := 0; page < s.cfg.maxPages(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vars := map[string]any{"first": s.cfg.pageSize()}
		if cursor != "" {
			vars["after"] = cursor
		}
		if location != "" {
			vars["location"] = location
		}

		resp, err := s.query(ctx, bulkQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page+1, err)
		}

		edges := resp.Data.InventoryPositions.Edges
		for _, edge := range edges {
			ref := edge.Node.ProductRef
			if len(want) == 0 {
				out[ref] += edge.Node.OnHand
				continue
			}
			orig, ok := want[strings.ToLower(ref)]
			if !ok {
				continue
			}
			out[orig] += edge.Node.OnHand
			seen[orig] = true
		}

		if len(want) > 0 && len(seen) == len(want) {
			break
		}
		if !resp.Data.InventoryPositions.PageInfo.HasNextPage || len(edges) == 0 {
			break
		}
		cursor = edges[len(edges)-1].Cursor
	}
	return out, nil
}

func (s *Session) query(ctx context.Context, query string, vars map[string]any) (*positionsResponse, error) {
	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, s.cfg.GraphQLURL, graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, err
	}
	upstream.BearerAuth(req, s.token)

	var resp positionsResponse
	if err := upstream.Do(s.http, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("query rejected: %s", resp.Errors[0].Message)
	}
	return &resp, nil
}
