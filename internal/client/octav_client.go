package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"octav_mcp/internal/app/port"
	"octav_mcp/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the production Octav API root.
	DefaultBaseURL = "https://api.octav.fi/v1"

	defaultAuthMessage    = "Invalid API key. Please check your OCTAV_API_KEY."
	defaultCreditsMessage = "Insufficient credits. Please purchase more credits at https://octav.fi"
	defaultRateMessage    = "Rate limit exceeded. Please try again later."
)

// ClientConfig holds what the client needs to reach the API.
type ClientConfig struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	// Timeout bounds a request when the caller's context has no deadline.
	// Zero leaves the transport default in place.
	Timeout time.Duration
}

// OctavClient implements port.OctavAPI over fasthttp.
type OctavClient struct {
	client    *fasthttp.Client
	apiKey    string
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
	metrics   port.Metrics
}

var _ port.OctavAPI = (*OctavClient)(nil)

// NewOctavClient creates a new instance of OctavClient. It fails when no API key is configured.
func NewOctavClient(cfg ClientConfig, logger *zap.Logger, metrics port.Metrics) (*OctavClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "octav-mcp"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &OctavClient{
		client:    &fasthttp.Client{Name: userAgent},
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		timeout:   cfg.Timeout,
		logger:    logger.Named("OctavClient"),
		metrics:   metrics,
	}, nil
}

// GetPortfolio fetches wallet holdings and DeFi positions.
func (c *OctavClient) GetPortfolio(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error) {
	var out []entity.PortfolioEntry
	err := c.get(ctx, "portfolio", "/portfolio", addressArgs(addresses), &out)
	return out, err
}

// GetWallet fetches wallet holdings only.
func (c *OctavClient) GetWallet(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error) {
	var out []entity.PortfolioEntry
	err := c.get(ctx, "wallet", "/wallet", addressArgs(addresses), &out)
	return out, err
}

// GetNAV fetches the net asset value in the requested currency.
func (c *OctavClient) GetNAV(ctx context.Context, addresses []string, currency string) (*entity.NAVResponse, error) {
	args := addressArgs(addresses)
	args = append(args, queryArg{"currency", currency})
	var out entity.NAVResponse
	if err := c.get(ctx, "nav", "/nav", args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTokenOverview fetches the token distribution. date is optional.
func (c *OctavClient) GetTokenOverview(ctx context.Context, addresses []string, date string) (*entity.TokenOverviewResponse, error) {
	args := addressArgs(addresses)
	if date != "" {
		args = append(args, queryArg{"date", date})
	}
	var out entity.TokenOverviewResponse
	if err := c.get(ctx, "token-overview", "/token-overview", args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTransactions fetches one page of transaction history.
func (c *OctavClient) GetTransactions(ctx context.Context, addresses []string, q port.TransactionQuery) (*entity.TransactionsResponse, error) {
	args := addressArgs(addresses)
	for _, opt := range []queryArg{
		{"chain", q.Chain},
		{"type", q.Type},
		{"startDate", q.StartDate},
		{"endDate", q.EndDate},
	} {
		if opt.value != "" {
			args = append(args, opt)
		}
	}
	if q.Offset != nil {
		args = append(args, queryArg{"offset", strconv.Itoa(*q.Offset)})
	}
	if q.Limit != nil {
		args = append(args, queryArg{"limit", strconv.Itoa(*q.Limit)})
	}
	var out entity.TransactionsResponse
	if err := c.get(ctx, "transactions", "/transactions", args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncTransactions asks the API to re-index the addresses now.
func (c *OctavClient) SyncTransactions(ctx context.Context, addresses []string) (*entity.SyncResponse, error) {
	body := struct {
		Addresses []string `json:"addresses"`
	}{Addresses: addresses}
	var out entity.SyncResponse
	if err := c.post(ctx, "sync-transactions", "/transactions/sync", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistorical fetches the portfolio as it was on date (YYYY-MM-DD).
func (c *OctavClient) GetHistorical(ctx context.Context, addresses []string, date string) ([]entity.PortfolioEntry, error) {
	args := addressArgs(addresses)
	args = append(args, queryArg{"date", date})
	var out []entity.PortfolioEntry
	err := c.get(ctx, "historical", "/historical", args, &out)
	return out, err
}

// SubscribeSnapshot enables automatic daily snapshots for the addresses.
func (c *OctavClient) SubscribeSnapshot(ctx context.Context, subscriptions []entity.SnapshotSubscription) (*entity.SubscribeSnapshotResponse, error) {
	body := struct {
		Addresses []entity.SnapshotSubscription `json:"addresses"`
	}{Addresses: subscriptions}
	var out entity.SubscribeSnapshotResponse
	if err := c.post(ctx, "subscribe-snapshot", "/snapshot/subscribe", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatus fetches per-address sync status. Free of charge.
func (c *OctavClient) GetStatus(ctx context.Context, addresses []string) ([]entity.StatusEntry, error) {
	var out []entity.StatusEntry
	err := c.get(ctx, "status", "/status", addressArgs(addresses), &out)
	return out, err
}

// GetCredits fetches the remaining credit balance. Free of charge.
func (c *OctavClient) GetCredits(ctx context.Context) (entity.Credits, error) {
	var out entity.Credits
	err := c.get(ctx, "credits", "/credits", nil, &out)
	return out, err
}

// GetAirdrop fetches airdrop eligibility for a single address.
func (c *OctavClient) GetAirdrop(ctx context.Context, address string) (*entity.AirdropResponse, error) {
	var out entity.AirdropResponse
	if err := c.get(ctx, "airdrop", "/airdrop", addressArgs([]string{address}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPolymarket fetches prediction market positions for a single address.
func (c *OctavClient) GetPolymarket(ctx context.Context, address string) (*entity.PolymarketResponse, error) {
	var out entity.PolymarketResponse
	if err := c.get(ctx, "polymarket", "/polymarket", addressArgs([]string{address}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAgentWallet is GetWallet billed through the x402 payment flow.
func (c *OctavClient) GetAgentWallet(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error) {
	var out []entity.PortfolioEntry
	err := c.get(ctx, "agent-wallet", "/agent/wallet", addressArgs(addresses), &out)
	return out, err
}

// GetAgentPortfolio is GetPortfolio billed through the x402 payment flow.
func (c *OctavClient) GetAgentPortfolio(ctx context.Context, addresses []string) ([]entity.PortfolioEntry, error) {
	var out []entity.PortfolioEntry
	err := c.get(ctx, "agent-portfolio", "/agent/portfolio", addressArgs(addresses), &out)
	return out, err
}

type queryArg struct {
	key   string
	value string
}

func addressArgs(addresses []string) []queryArg {
	args := make([]queryArg, 0, len(addresses)+2)
	for _, addr := range addresses {
		args = append(args, queryArg{"addresses", addr})
	}
	return args
}

func (c *OctavClient) get(ctx context.Context, endpoint, path string, query []queryArg, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		args := fasthttp.AcquireArgs()
		for _, q := range query {
			args.Add(q.key, q.value)
		}
		requestURL += "?" + string(args.QueryString())
		fasthttp.ReleaseArgs(args)
	}
	return c.do(ctx, endpoint, fasthttp.MethodGet, requestURL, nil, out)
}

func (c *OctavClient) post(ctx context.Context, endpoint, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request body: %w", endpoint, err)
	}
	return c.do(ctx, endpoint, fasthttp.MethodPost, c.baseURL+path, body, out)
}

// do performs exactly one request and maps the outcome onto the error taxonomy.
func (c *OctavClient) do(ctx context.Context, endpoint, method, requestURL string, body []byte, out any) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Message: fmt.Sprintf("Network error: %v", err), Err: err}
	}

	c.logger.Debug("Requesting Octav API", zap.String("method", method), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.apiKey)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(c.userAgent)
	if body != nil {
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else if c.timeout > 0 {
		err = c.client.DoTimeout(req, resp, c.timeout)
	} else {
		err = c.client.Do(req, resp)
	}
	elapsed := time.Since(started)

	if err != nil {
		c.metrics.ObserveAPIRequest(endpoint, 0, elapsed)
		c.logger.Error("Failed to execute request to Octav API",
			zap.String("endpoint", endpoint),
			zap.String("url", requestURL),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return &APIError{Message: fmt.Sprintf("Network error: %v", err), Err: err}
	}

	status := resp.StatusCode()
	rawBody := append([]byte(nil), resp.Body()...)
	c.metrics.ObserveAPIRequest(endpoint, status, elapsed)

	if status < 200 || status > 299 {
		apiErr := classify(status, rawBody, string(resp.Header.Peek(fasthttp.HeaderRetryAfter)))
		c.logger.Warn("Octav API request failed",
			zap.String("endpoint", endpoint),
			zap.Int("statusCode", status),
			zap.Duration("elapsed", elapsed),
			zap.ByteString("responseBody", rawBody))
		return apiErr
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Error("Failed to unmarshal Octav API response",
			zap.String("endpoint", endpoint),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return &APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("Failed to parse %s response: %v", endpoint, err),
			Body:       string(rawBody),
			Err:        err,
		}
	}

	c.logger.Debug("Octav API request succeeded",
		zap.String("endpoint", endpoint),
		zap.Int("statusCode", status),
		zap.Duration("elapsed", elapsed))
	return nil
}

// errorBody is the shape the API uses for error payloads. Every field is optional.
type errorBody struct {
	Message       string   `json:"message"`
	Error         string   `json:"error"`
	CreditsNeeded *float64 `json:"creditsNeeded"`
	RetryAfter    *float64 `json:"retryAfter"`
}

// classify maps a non-success status and its body onto the error taxonomy.
func classify(status int, rawBody []byte, retryAfterHeader string) error {
	var parsed errorBody
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		parsed = errorBody{Message: strings.TrimSpace(string(rawBody))}
	}
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	switch status {
	case fasthttp.StatusUnauthorized:
		return &AuthenticationError{Message: orDefault(message, defaultAuthMessage)}
	case fasthttp.StatusPaymentRequired:
		return &InsufficientCreditsError{
			Message:       orDefault(message, defaultCreditsMessage),
			CreditsNeeded: parsed.CreditsNeeded,
		}
	case fasthttp.StatusTooManyRequests:
		retryAfter := parsed.RetryAfter
		if retryAfter == nil && retryAfterHeader != "" {
			if secs, err := strconv.ParseFloat(strings.TrimSpace(retryAfterHeader), 64); err == nil {
				retryAfter = &secs
			}
		}
		return &RateLimitError{
			Message:    orDefault(message, defaultRateMessage),
			RetryAfter: retryAfter,
		}
	default:
		return &APIError{
			StatusCode: status,
			Message:    orDefault(message, fmt.Sprintf("API request failed with status %d", status)),
			Body:       string(rawBody),
		}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
