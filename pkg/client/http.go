// Package client provides the content-discovery API client.
package client

import (
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// DefaultBaseURL is the local discovery backend.
const DefaultBaseURL = "http://localhost:8001"

// API paths.
const (
	searchStreamPath    = "/api/search/stream"
	chatStreamPath      = "/api/chat/stream"
	recommendStreamPath = "/api/recommendations/stream"
	configurePath       = "/api/configure"
	resetKeyPath        = "/api/reset-api-key"
	chatHistoryPath     = "/api/chat/history/"
	chatClearPath       = "/api/chat/clear"
	healthPath          = "/api/health"
)

// HTTPClientInterface defines the contract for HTTP operations. It enables
// dependency injection and mocking in tests.
type HTTPClientInterface interface {
	// Get performs a GET request. url may be a path (prefixed with the
	// base URL) or a full URL.
	Get(url string, headers map[string]string) (*http.Response, error)

	// Post performs a POST request with a JSON body.
	Post(url string, body io.Reader, headers map[string]string) (*http.Response, error)

	// Close releases client resources.
	Close() error
}

// HTTPClient wraps tls-client for requests against the discovery backend.
type HTTPClient struct {
	client  tls_client.HttpClient
	baseURL string
}

// NewHTTPClient creates an HTTP client for the given base URL. Streaming
// responses are long-lived, so the transport timeout is generous.
func NewHTTPClient(baseURL string, timeoutSeconds int) (*HTTPClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 300
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithClientProfile(profiles.Chrome_133),
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &HTTPClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// buildHeaders merges custom headers with defaults.
func (c *HTTPClient) buildHeaders(custom map[string]string) http.Header {
	headers := http.Header{
		"Accept":       {"text/event-stream, application/json"},
		"Content-Type": {"application/json"},
	}
	for key, value := range custom {
		headers.Set(key, value)
	}
	return headers
}

// normalizeURL converts a path to a full URL if needed.
func (c *HTTPClient) normalizeURL(urlStr string) string {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr
	}
	return c.baseURL + urlStr
}

// Get implements HTTPClientInterface.
func (c *HTTPClient) Get(urlStr string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.normalizeURL(urlStr), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.buildHeaders(headers)
	return c.client.Do(req)
}

// Post implements HTTPClientInterface.
func (c *HTTPClient) Post(urlStr string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequest("POST", c.normalizeURL(urlStr), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.buildHeaders(headers)
	return c.client.Do(req)
}

// Close implements HTTPClientInterface.
func (c *HTTPClient) Close() error {
	// tls-client has no explicit close
	return nil
}

// MockHTTPClient is a test double for HTTPClientInterface.
type MockHTTPClient struct {
	// Response and error returned by the next call.
	Response *http.Response
	Err      error

	// Per-URL responses take precedence over Response when set.
	Routes map[string]*http.Response

	// Request tracking.
	LastRequestURL  string
	LastRequestBody []byte
	RequestCount    int
}

// NewMockHTTPClient creates an empty mock.
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{Routes: make(map[string]*http.Response)}
}

// Get implements HTTPClientInterface.
func (m *MockHTTPClient) Get(url string, headers map[string]string) (*http.Response, error) {
	m.RequestCount++
	m.LastRequestURL = url
	if resp, ok := m.Routes[url]; ok {
		return resp, nil
	}
	return m.Response, m.Err
}

// Post implements HTTPClientInterface.
func (m *MockHTTPClient) Post(url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	m.RequestCount++
	m.LastRequestURL = url
	if body != nil {
		m.LastRequestBody, _ = io.ReadAll(body)
	}
	if resp, ok := m.Routes[url]; ok {
		return resp, nil
	}
	return m.Response, m.Err
}

// Close implements HTTPClientInterface.
func (m *MockHTTPClient) Close() error {
	return nil
}

var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &MockHTTPClient{}
