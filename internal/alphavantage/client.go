// Package alphavantage is a client for the Alpha Vantage market-data API.
//
// Fixed-schema endpoints are decoded into typed responses. Endpoints whose
// payloads are loosely typed return the raw JSON body for the caller to
// normalize.
package alphavantage

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

const baseURL = "https://www.alphavantage.co"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Alpha Vantage API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	log   zerolog.Logger
}

// Option is a configuration option for the Alpha Vantage client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log.With().Str("component", "alphavantage").Logger()
	}
}

// NewClient creates a new Alpha Vantage client authenticated with key.
func NewClient(key string, options ...Option) (*Client, error) {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		log:        zerolog.Nop(),
	}
	if key != "" {
		// https://www.alphavantage.co/documentation/
		client.query.Add("apikey", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}
