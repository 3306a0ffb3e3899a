// internal/rawg/client.go
package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PageSize is the number of games requested per listing page.
const PageSize = 40

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rawg API returned status %d: %s", e.StatusCode, e.Body)
}

// IsClientError reports a 4xx response.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx response.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// Client is a direct, synchronous adapter for the RAWG catalog API.
// One HTTP call per method, no retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListGames fetches one page of the games listing, filtered to release dates
// in [since, 2099-12-31] and ordered by release date ascending.
func (c *Client) ListGames(ctx context.Context, since time.Time, page int) (*GamePage, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("dates", since.Format(releasedLayout)+",2099-12-31")
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("page_size", fmt.Sprintf("%d", PageSize))
	params.Set("ordering", "released")

	var pageDto GamePage
	if err := c.get(ctx, "/games", params, &pageDto); err != nil {
		return nil, err
	}
	return &pageDto, nil
}

// GetGameDetail fetches the description/developer/publisher for one slug.
func (c *Client) GetGameDetail(ctx context.Context, slug string) (*GameDetail, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)

	var detail GameDetail
	if err := c.get(ctx, "/games/"+url.PathEscape(slug), params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListStores fetches the store directory as an id -> display name map.
func (c *Client) ListStores(ctx context.Context) (map[int]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)

	var resp storesResponse
	if err := c.get(ctx, "/stores", params, &resp); err != nil {
		return nil, err
	}
	names := make(map[int]string, len(resp.Results))
	for _, store := range resp.Results {
		names[store.ID] = store.Name
	}
	return names, nil
}

// ListGameStores fetches the store links for one slug.
func (c *Client) ListGameStores(ctx context.Context, slug string) ([]StoreLink, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)

	var resp gameStoresResponse
	if err := c.get(ctx, "/games/"+url.PathEscape(slug)+"/stores", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	uri := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rawg API call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal rawg response: %w", err)
	}
	return nil
}
