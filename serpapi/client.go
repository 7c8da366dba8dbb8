package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrNoRentData means the search succeeded but no dollar figure could be
// pulled out of the answer box.
var ErrNoRentData = errors.New("serpapi: no rent figure in answer box")

type Client struct {
	key  string
	http *retryablehttp.Client
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{key: apiKey, http: rc}
}

// AverageRent scrapes a market-average monthly rent for a bedroom count in a
// zip out of the search answer box. Best effort only.
func (c *Client) AverageRent(ctx context.Context, zipcode string, bedrooms int) (int, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("average rent for %d bedroom home in %s", bedrooms, zipcode))
	q.Set("api_key", c.key)
	q.Set("hl", "en")
	q.Set("gl", "us")

	u := "https://serpapi.com/search.json?" + q.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("serpapi error %d", resp.StatusCode)
	}

	var root struct {
		AnswerBox struct {
			Highlighted []string `json:"snippet_highlighted_words"`
		} `json:"answer_box"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return 0, err
	}
	for _, snippet := range root.AnswerBox.Highlighted {
		if rent := extractDollars(snippet); rent > 0 {
			return rent, nil
		}
	}
	return 0, ErrNoRentData
}

// extractDollars keeps the digits of a snippet like "$1,850/mo".
func extractDollars(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	var n int
	_, err := fmt.Sscanf(b.String(), "%d", &n)
	if err != nil {
		return 0
	}
	return n
}
