package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client fetches crypto rates from the payment provider's public pricing
// endpoint: GET {base}/rate/{coin}?basePair=USD -> {"value": "<decimal>"}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type rateResponse struct {
	Value string `json:"value"`
}

func (c *Client) FetchRate(ctx context.Context, currency string) (float64, error) {
	if c.apiKey == "" {
		return 0, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/rate/%s?basePair=USD", c.baseURL, strings.ToLower(currency))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: malformed response body: %v", ErrUpstream, err)
	}

	rate, err := strconv.ParseFloat(body.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed price value %q", ErrUpstream, body.Value)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: non-positive price %v", ErrUpstream, rate)
	}

	return rate, nil
}
