// Package artic is a small client for the Art Institute of Chicago artworks
// listing endpoint.
package artic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.artic.edu/api/v1"

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artbrowse_api_requests_total",
		Help: "Artworks listing requests by HTTP status",
	}, []string{"status"})

	apiRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "artbrowse_api_request_duration_seconds",
		Help:    "Artworks listing request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artbrowse_api_errors_total",
		Help: "Artworks listing failures by error class",
	}, []string{"class"})
)

// Config holds client settings.
type Config struct {
	// BaseURL is the API root without a trailing slash.
	BaseURL string

	// UserAgent is sent as User-Agent and AIC-User-Agent.
	UserAgent string

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// Fields is the projection sent as the fields parameter. Empty omits it.
	Fields []string

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the configuration for the public API.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "artbrowse/0.1",
		Timeout:   30 * time.Second,
		Fields:    DefaultFields,
	}
}

// Client fetches artwork pages.
type Client struct {
	httpClient *http.Client
	endpoint   *url.URL
	config     Config
	logger     zerolog.Logger
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}
	endpoint := base.JoinPath("artworks")

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: hc,
		endpoint:   endpoint,
		config:     cfg,
		logger:     log.With().Str("component", "artic-client").Logger(),
	}, nil
}

// PageURL returns the listing URL for a 1-based page.
func (c *Client) PageURL(page, limit int) string {
	u := *c.endpoint
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if len(c.config.Fields) > 0 {
		q.Set("fields", strings.Join(c.config.Fields, ","))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchPage requests one 1-based page of at most limit artworks.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 || limit < 1 {
		return Page{}, ErrInvalidPage
	}

	start := time.Now()
	defer func() {
		apiRequestDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(page, limit), nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("AIC-User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Int("page", page).
		Int("limit", limit).
		Msg("Fetching artworks page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiRequestsTotal.WithLabelValues("network_error").Inc()
		return Page{}, c.fail(&APIError{Class: ErrorClassNetwork, Message: "request failed", Err: err}, page, limit)
	}
	defer resp.Body.Close()

	apiRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page{}, c.fail(&APIError{
			StatusCode: resp.StatusCode,
			Class:      classifyStatus(resp.StatusCode),
			Message:    strings.TrimSpace(string(body)),
		}, page, limit)
	}

	var out Page
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Page{}, c.fail(&APIError{StatusCode: resp.StatusCode, Class: ErrorClassNetwork, Message: "read body", Err: err}, page, limit)
		}
		return Page{}, c.fail(&APIError{StatusCode: resp.StatusCode, Class: ErrorClassDecode, Message: "decode body", Err: err}, page, limit)
	}
	if out.Data == nil {
		return Page{}, c.fail(&APIError{StatusCode: resp.StatusCode, Class: ErrorClassDecode, Message: "response has no data field"}, page, limit)
	}
	for i := range out.Data {
		out.Data[i] = out.Data[i].Clean()
	}

	c.logger.Debug().
		Int("page", page).
		Int("limit", limit).
		Int("records", len(out.Data)).
		Int("total", out.Pagination.Total).
		Dur("duration", time.Since(start)).
		Msg("Fetched artworks page")

	return out, nil
}

func (c *Client) fail(err *APIError, page, limit int) error {
	apiErrorsTotal.WithLabelValues(string(err.Class)).Inc()
	c.logger.Warn().
		Err(err).
		Int("page", page).
		Int("limit", limit).
		Int("status_code", err.StatusCode).
		Str("error_class", string(err.Class)).
		Msg("Artworks request failed")
	return err
}
