package zillow

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
)

type Client struct {
	key  string
	host string
	http *retryablehttp.Client
}

// NewClient talks to the Zillow RapidAPI gateway. host is the X-RapidAPI-Host
// value, e.g. "zillow-com1.p.rapidapi.com".
func NewClient(apiKey, host string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{key: apiKey, host: host, http: rc}
}

// SearchForSale runs propertyExtendedSearch for houses listed for sale in a
// city/state.
func (c *Client) SearchForSale(ctx context.Context, city, state string, limit int) ([]byte, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%s, %s", city, state))
	q.Set("status_type", "ForSale")
	q.Set("home_type", "Houses")
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}

	u := fmt.Sprintf("https://%s/propertyExtendedSearch?%s", c.host, q.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.key)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("zillow error %d: %v", resp.StatusCode, body)
	}
	return ioReadAllLimit(resp.Body, 4<<20)
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
