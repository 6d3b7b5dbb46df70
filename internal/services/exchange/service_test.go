package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	rate  float64
	err   error
	calls int
}

func (f *fakeFetcher) FetchRate(ctx context.Context, currency string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestService_GetRate_Caching(t *testing.T) {
	fetcher := &fakeFetcher{rate: 65000}
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(fetcher, clock.Now)

	// First call misses the cache and fetches.
	rate, err := svc.GetRate(context.Background(), "BTC", true)
	require.NoError(t, err)
	assert.Equal(t, 65000.0, rate.RateToUSD)
	assert.False(t, rate.Cached)
	assert.Equal(t, 1, fetcher.calls)

	// Second call within the TTL is served from cache.
	rate, err = svc.GetRate(context.Background(), "BTC", true)
	require.NoError(t, err)
	assert.True(t, rate.Cached)
	assert.Equal(t, 1, fetcher.calls)

	// Just under the TTL boundary the entry is still fresh.
	clock.Advance(299 * time.Second)
	rate, err = svc.GetRate(context.Background(), "BTC", true)
	require.NoError(t, err)
	assert.True(t, rate.Cached)
	assert.Equal(t, 1, fetcher.calls)

	// At exactly 300 seconds the entry has expired and is refetched.
	clock.Advance(1 * time.Second)
	fetcher.rate = 66000
	rate, err = svc.GetRate(context.Background(), "BTC", true)
	require.NoError(t, err)
	assert.False(t, rate.Cached)
	assert.Equal(t, 66000.0, rate.RateToUSD)
	assert.Equal(t, 2, fetcher.calls)
}

func TestService_GetRate_BypassCache(t *testing.T) {
	fetcher := &fakeFetcher{rate: 150}
	clock := &fakeClock{t: time.Now()}
	svc := NewService(fetcher, clock.Now)

	_, err := svc.GetRate(context.Background(), "SOL", true)
	require.NoError(t, err)

	// useCache=false fetches even with a fresh entry present and
	// overwrites it on success.
	fetcher.rate = 160
	rate, err := svc.GetRate(context.Background(), "SOL", false)
	require.NoError(t, err)
	assert.Equal(t, 160.0, rate.RateToUSD)
	assert.Equal(t, 2, fetcher.calls)

	rate, err = svc.GetRate(context.Background(), "SOL", true)
	require.NoError(t, err)
	assert.True(t, rate.Cached)
	assert.Equal(t, 160.0, rate.RateToUSD)
	assert.Equal(t, 2, fetcher.calls)
}

func TestService_GetRate_UnsupportedCurrency(t *testing.T) {
	svc := NewService(&fakeFetcher{rate: 1}, nil)

	_, err := svc.GetRate(context.Background(), "XRP", true)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = svc.GetRate(context.Background(), "btc", true)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency, "currency codes are case sensitive")
}

func TestService_GetRate_FetchFailureLeavesCacheUntouched(t *testing.T) {
	fetcher := &fakeFetcher{rate: 3000}
	clock := &fakeClock{t: time.Now()}
	svc := NewService(fetcher, clock.Now)

	_, err := svc.GetRate(context.Background(), "ETH", true)
	require.NoError(t, err)

	// A forced fetch that fails must not clobber the cached entry.
	fetcher.err = errors.New("provider down")
	_, err = svc.GetRate(context.Background(), "ETH", false)
	require.Error(t, err)

	fetcher.err = nil
	rate, err := svc.GetRate(context.Background(), "ETH", true)
	require.NoError(t, err)
	assert.True(t, rate.Cached)
	assert.Equal(t, 3000.0, rate.RateToUSD)
}

func TestService_Convert(t *testing.T) {
	svc := NewService(&fakeFetcher{rate: 1}, nil)

	tests := []struct {
		name    string
		amount  float64
		rate    float64
		want    float64
		wantErr error
	}{
		{"whole cents", 0.01, 65000, 650, nil},
		{"rounds to two decimals", 0.01234, 65000.123, 802.1, nil},
		{"zero amount", 0, 65000, 0, nil},
		{"negative amount", -1, 65000, 0, ErrInvalidAmount},
		{"zero rate", 1, 0, 0, ErrInvalidRate},
		{"negative rate", 1, -5, 0, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Convert(tt.amount, tt.rate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestClient_FetchRate(t *testing.T) {
	t.Run("parses the rate value", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rate/btc", r.URL.Path)
			assert.Equal(t, "USD", r.URL.Query().Get("basePair"))
			w.Write([]byte(`{"value": "64123.45"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key")
		rate, err := client.FetchRate(context.Background(), "BTC")
		require.NoError(t, err)
		assert.Equal(t, 64123.45, rate)
	})

	t.Run("missing API key", func(t *testing.T) {
		client := NewClient("http://localhost", "")
		_, err := client.FetchRate(context.Background(), "BTC")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key")
		_, err := client.FetchRate(context.Background(), "BTC")
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key")
		_, err := client.FetchRate(context.Background(), "BTC")
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("non-positive price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"value": "0"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key")
		_, err := client.FetchRate(context.Background(), "BTC")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
