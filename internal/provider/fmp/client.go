package fmp

import (
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://financialmodelingprep.com/api/v3"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=fmp_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Financial Modeling Prep API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers sent with each request.
	header http.Header
	// query contains additional query parameters sent with each request.
	query url.Values
}

// ClientOption is a configuration option for the FMP client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new FMP API client. The key is appended to every
// request as the apikey query parameter; an empty key builds a client whose
// requests the upstream will reject, which the adapter layer turns into
// "unavailable" rather than an error.
func NewClient(key string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		c.query.Add("apikey", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}
