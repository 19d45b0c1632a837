package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client implements domain.MetadataClient for the OMDb API.
// Every call is a single request: no retries, no caching and no client-side
// timeout beyond what the caller's context imposes.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMovies performs a keyword search. Year and type are only sent when set.
func (c *Client) SearchMovies(ctx context.Context, req domain.SearchRequest) (domain.ResultSet, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("s", req.Query)
	if req.Year != "" {
		query.Set("y", req.Year)
	}
	if req.Type != domain.KindAny {
		query.Set("type", string(req.Type))
	}
	query.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.get(ctx, metrics.EndpointSearch, query, &resp); err != nil {
		return domain.ResultSet{}, err
	}

	result := MapSearch(resp)
	c.logger.Debug("omdb search complete",
		"query", req.Query,
		"page", page,
		"items", len(result.Items),
		"total", result.TotalResults,
	)
	return result, nil
}

// FetchMovieDetail looks up one title with the full plot
func (c *Client) FetchMovieDetail(ctx context.Context, id string) (domain.Detail, error) {
	query := url.Values{}
	query.Set("i", id)
	query.Set("plot", "full")

	var resp DetailResponse
	if err := c.get(ctx, metrics.EndpointDetail, query, &resp); err != nil {
		return domain.Detail{}, err
	}

	return MapDetail(resp), nil
}

// failer is implemented by every response body via Envelope
type failer interface {
	envelope() Envelope
}

func (e Envelope) envelope() Envelope { return e }

// get performs one GET and decodes the body into dest.
// A body with Response "False" becomes a ProviderError whatever the HTTP status,
// since OMDb answers bad keys with 401 plus a JSON error.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest failer) error {
	start := time.Now()
	err := c.doGet(ctx, query, dest)
	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
	return err
}

func (c *Client) doGet(ctx context.Context, query url.Values, dest failer) error {
	query.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("omdb request", "params", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.Error("omdb request failed", "error", err)
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	decodeErr := json.Unmarshal(body, dest)
	if decodeErr == nil {
		if env := dest.envelope(); env.Failed() {
			c.logger.Warn("omdb negative response", "status", resp.StatusCode, "error", env.Error)
			return &domain.ProviderError{Message: env.Error}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		return &domain.TransportError{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if decodeErr != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to parse response: %w", decodeErr)}
	}

	return nil
}

func outcome(err error) string {
	var pe *domain.ProviderError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &pe):
		return metrics.OutcomeProvider
	default:
		return metrics.OutcomeTransport
	}
}

// redact returns the encoded query without the API key
func redact(query url.Values) string {
	clone := url.Values{}
	for k, v := range query {
		if k == "apikey" {
			continue
		}
		clone[k] = v
	}
	return clone.Encode()
}
