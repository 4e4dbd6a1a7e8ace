package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"octav_mcp/internal/app/port"
	"octav_mcp/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type fakeOctav struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	header   map[string]string
}

func (f *fakeOctav) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	f.mu.Unlock()
	for k, v := range f.header {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeOctav) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, fake *fakeOctav) *OctavClient {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c, err := NewOctavClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1", UserAgent: "octav-mcp/test"}, nil, nil)
	require.NoError(t, err)
	return c
}

type recordingMetrics struct {
	port.NopMetrics
	endpoints []string
	statuses  []int
}

func (m *recordingMetrics) ObserveAPIRequest(endpoint string, status int, _ time.Duration) {
	m.endpoints = append(m.endpoints, endpoint)
	m.statuses = append(m.statuses, status)
}

func TestNewOctavClient_RequiresAPIKey(t *testing.T) {
	_, err := NewOctavClient(ClientConfig{APIKey: "  "}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGetPortfolio_BuildsRequest(t *testing.T) {
	fake := &fakeOctav{body: `[{"address":"` + testAddress + `","networth":"200.01","assetByProtocols":{"wallet":{"name":"Wallet","key":"wallet"}}}]`}
	c := newTestClient(t, fake)

	entries, err := c.GetPortfolio(context.Background(), []string{testAddress, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.Amount("200.01"), entries[0].Networth)
	assert.Equal(t, []string{"wallet"}, entries[0].AssetByProtocols.Keys())

	req := fake.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/portfolio", req.Path)
	assert.Equal(t, "addresses="+testAddress+"&addresses=9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", req.Query)
	assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "octav-mcp/test", req.Header.Get("User-Agent"))
}

func TestGetTransactions_OptionalQuery(t *testing.T) {
	fake := &fakeOctav{body: `{"transactions":[],"total":0,"offset":0,"limit":50}`}
	c := newTestClient(t, fake)
	offset, limit := 50, 25

	resp, err := c.GetTransactions(context.Background(), []string{testAddress}, port.TransactionQuery{
		Chain:     "ethereum",
		StartDate: "2024-01-01",
		Offset:    &offset,
		Limit:     &limit,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, resp.Limit)
	req := fake.last(t)
	assert.Equal(t, "/v1/transactions", req.Path)
	assert.Equal(t, "addresses="+testAddress+"&chain=ethereum&startDate=2024-01-01&offset=50&limit=25", req.Query)
}

func TestGetNAV_AndTokenOverviewQuery(t *testing.T) {
	fake := &fakeOctav{body: `1234.5`}
	c := newTestClient(t, fake)

	nav, err := c.GetNAV(context.Background(), []string{testAddress}, "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, nav.NAV)
	assert.Equal(t, "addresses="+testAddress+"&currency=EUR", fake.last(t).Query)

	fake.body = `[{"symbol":"ETH","balance":"1","value":"3000"}]`
	overview, err := c.GetTokenOverview(context.Background(), []string{testAddress}, "")
	require.NoError(t, err)
	require.Len(t, overview.Tokens, 1)
	assert.Equal(t, "/v1/token-overview", fake.last(t).Path)
	assert.Equal(t, "addresses="+testAddress, fake.last(t).Query)
}

func TestPostBodies(t *testing.T) {
	fake := &fakeOctav{body: `{"status":"syncing"}`}
	c := newTestClient(t, fake)

	_, err := c.SyncTransactions(context.Background(), []string{testAddress})
	require.NoError(t, err)
	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/transactions/sync", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"addresses":["`+testAddress+`"]}`, req.Body)

	fake.body = `{"subscribed":true}`
	resp, err := c.SubscribeSnapshot(context.Background(), []entity.SnapshotSubscription{{Address: testAddress, Description: "treasury"}})
	require.NoError(t, err)
	assert.True(t, resp.Subscribed)
	req = fake.last(t)
	assert.Equal(t, "/v1/snapshot/subscribe", req.Path)
	assert.JSONEq(t, `{"addresses":[{"address":"`+testAddress+`","description":"treasury"}]}`, req.Body)
}

func TestSingleAddressEndpoints(t *testing.T) {
	fake := &fakeOctav{body: `{"address":"` + testAddress + `","airdrops":[]}`}
	c := newTestClient(t, fake)

	_, err := c.GetAirdrop(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, "/v1/airdrop", fake.last(t).Path)
	assert.Equal(t, "addresses="+testAddress, fake.last(t).Query)

	fake.body = `{"address":"` + testAddress + `","positions":[],"totalValue":0,"totalPnL":0}`
	_, err = c.GetPolymarket(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, "/v1/polymarket", fake.last(t).Path)

	fake.body = `42`
	credits, err := c.GetCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Credits(42), credits)
	assert.Equal(t, "/v1/credits", fake.last(t).Path)
	assert.Empty(t, fake.last(t).Query)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		header map[string]string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 default message",
			status: http.StatusUnauthorized,
			body:   ``,
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, defaultAuthMessage, authErr.Message)
			},
		},
		{
			name:   "402 with credits needed",
			status: http.StatusPaymentRequired,
			body:   `{"message":"Not enough credits","creditsNeeded":5}`,
			check: func(t *testing.T, err error) {
				var creditsErr *InsufficientCreditsError
				require.True(t, errors.As(err, &creditsErr))
				assert.Equal(t, "Not enough credits", creditsErr.Message)
				require.NotNil(t, creditsErr.CreditsNeeded)
				assert.Equal(t, 5.0, *creditsErr.CreditsNeeded)
			},
		},
		{
			name:   "429 with retry header",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			header: map[string]string{"Retry-After": "30"},
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.True(t, errors.As(err, &rateErr))
				assert.Equal(t, defaultRateMessage, rateErr.Message)
				require.NotNil(t, rateErr.RetryAfter)
				assert.Equal(t, 30.0, *rateErr.RetryAfter)
			},
		},
		{
			name:   "500 raw body",
			status: http.StatusInternalServerError,
			body:   `upstream exploded`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, 500, apiErr.StatusCode)
				assert.Equal(t, "upstream exploded", apiErr.Message)
				assert.Equal(t, "upstream exploded", apiErr.Body)
				assert.False(t, apiErr.IsNetwork())
			},
		},
		{
			name:   "503 empty body",
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "API request failed with status 503", apiErr.Message)
			},
		},
		{
			name:   "malformed success body",
			status: http.StatusOK,
			body:   `{"address":`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, 200, apiErr.StatusCode)
				assert.Equal(t, `{"address":`, apiErr.Body)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeOctav{status: tt.status, body: tt.body, header: tt.header}
			c := newTestClient(t, fake)

			_, err := c.GetStatus(context.Background(), []string{testAddress})

			require.Error(t, err)
			tt.check(t, err)
			fake.mu.Lock()
			assert.Len(t, fake.requests, 1, "exactly one attempt")
			fake.mu.Unlock()
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	metrics := &recordingMetrics{}
	c, err := NewOctavClient(ClientConfig{APIKey: "k", BaseURL: baseURL, Timeout: time.Second}, nil, metrics)
	require.NoError(t, err)

	_, err = c.GetCredits(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNetwork())
	assert.Contains(t, apiErr.Message, "Network error: ")
	assert.Equal(t, []string{"credits"}, metrics.endpoints)
	assert.Equal(t, []int{0}, metrics.statuses)
}

func TestCanceledContext(t *testing.T) {
	fake := &fakeOctav{body: `42`}
	c := newTestClient(t, fake)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetCredits(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.requests)
}
