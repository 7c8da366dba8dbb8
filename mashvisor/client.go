package mashvisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{
		key:     apiKey,
		baseURL: "https://api.mashvisor.com/v1.1",
		http:    rc,
		// Mashvisor plans meter aggressively; keep bursts small.
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
}

// GetCityNeighborhoods lists a city's neighborhoods.
// Docs: GET /client/city/neighborhoods/{state}/{city}
func (c *Client) GetCityNeighborhoods(ctx context.Context, state, city string) ([]byte, error) {
	u := fmt.Sprintf("%s/client/city/neighborhoods/%s/%s", c.baseURL, url.PathEscape(state), url.PathEscape(city))
	return c.get(ctx, u)
}

// GetNeighborhoodListings fetches traditional (long-term) rental listings for
// one neighborhood.
// Docs: GET /client/neighborhood/{id}/traditional/listing
func (c *Client) GetNeighborhoodListings(ctx context.Context, neighborhoodID, state string) ([]byte, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("state", state)
	u := fmt.Sprintf("%s/client/neighborhood/%s/traditional/listing?%s", c.baseURL, url.PathEscape(neighborhoodID), q.Encode())
	return c.get(ctx, u)
}

// GetLongTermComps fetches city-scoped long-term rental comps, optionally
// bounded to a price band.
func (c *Client) GetLongTermComps(ctx context.Context, city, state string, minPrice, maxPrice float64) ([]byte, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("state", state)
	q.Set("city", city)
	if minPrice > 0 {
		q.Set("min_price", fmt.Sprintf("%.0f", minPrice))
	}
	if maxPrice > 0 {
		q.Set("max_price", fmt.Sprintf("%.0f", maxPrice))
	}
	u := fmt.Sprintf("%s/client/long-term-comps?%s", c.baseURL, q.Encode())
	return c.get(ctx, u)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("mashvisor error %d: %v", resp.StatusCode, body)
	}
	return ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
