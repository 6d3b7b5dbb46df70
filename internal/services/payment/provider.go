package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ProviderClient provisions crypto deposit addresses with the upstream
// provider: POST {base}/{coin}/create/ -> {address_in, callback_url}.
type ProviderClient struct {
	baseURL           string
	apiKey            string
	commissionAddress string
	httpClient        *http.Client
}

func NewProviderClient(baseURL, apiKey, commissionAddress string) *ProviderClient {
	return &ProviderClient{
		baseURL:           strings.TrimRight(baseURL, "/"),
		apiKey:            apiKey,
		commissionAddress: commissionAddress,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type createAddressRequest struct {
	Callback   string           `json:"callback"`
	Address    string           `json:"address"`
	Commission createCommission `json:"commission"`
}

type createCommission struct {
	Address    string  `json:"address"`
	Percentage float64 `json:"percentage"`
}

type createAddressResponse struct {
	AddressIn   string `json:"address_in"`
	CallbackURL string `json:"callback_url"`
}

func (c *ProviderClient) CreateAddress(ctx context.Context, currency, payoutAddress, callbackURL string, commissionPct float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(createAddressRequest{
		Callback: callbackURL,
		Address:  payoutAddress,
		Commission: createCommission{
			Address:    c.commissionAddress,
			Percentage: commissionPct,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/%s/create/", c.baseURL, strings.ToLower(currency))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var body createAddressResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed response body: %v", ErrUpstream, err)
	}
	if body.AddressIn == "" {
		return "", fmt.Errorf("%w: response missing address_in", ErrUpstream)
	}

	return body.AddressIn, nil
}
