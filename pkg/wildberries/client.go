package wildberries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultSearchURL is the public catalog search endpoint.
	DefaultSearchURL = "https://search.wb.ru/exactmatch/ru/common/v4/search"
	// DefaultDetailURL is the public card detail endpoint.
	DefaultDetailURL = "https://card.wb.ru/cards/detail"
	// DefaultProductURLTemplate is the storefront page of a single item.
	DefaultProductURLTemplate = "https://www.wildberries.ru/catalog/%d/detail.aspx"

	DefaultCurrency = "rub"
	DefaultDest     = "-1257786"
	DefaultAppType  = "1"
)

// DefaultTreeMirrors are the known locations of the subject tree JSON, in preference order.
var DefaultTreeMirrors = []string{
	"https://static-basket-01.wb.ru/vol0/data/subject-tree.json",
	"https://static-basket-01.wbbasket.ru/vol0/data/subject-tree.json",
}

// maxResponseSize is the maximum allowed response body size (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds Wildberries public API configuration
type Config struct {
	SearchURL  string
	DetailURL  string
	Currency   string
	Dest       string
	AppType    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a minimal HTTP client for the public (unauthenticated) Wildberries endpoints.
type Client struct {
	httpClient *http.Client
	config     Config
	debug      bool
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}

// NewClient constructs a new client, filling empty fields with the public defaults.
func NewClient(config Config) *Client {
	if config.SearchURL == "" {
		config.SearchURL = DefaultSearchURL
	}
	if config.DetailURL == "" {
		config.DetailURL = DefaultDetailURL
	}
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.Dest == "" {
		config.Dest = DefaultDest
	}
	if config.AppType == "" {
		config.AppType = DefaultAppType
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		config:     config,
		debug:      os.Getenv("ENV") == "development",
	}
}

// doGet issues a GET to endpoint with params and decodes the JSON body into result.
// Non-2xx responses are reported as *StatusError without decoding.
func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values, result any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}
	target := u.String()

	if c.debug {
		log.Debug().
			Str("endpoint", target).
			Msg("[WILDBERRIES] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Limit response body size to prevent OOM
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", u.Path).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[WILDBERRIES] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
