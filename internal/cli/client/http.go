package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envAPIURL = "CRICPIX_API_URL"

	defaultAPIURL = "http://localhost:5000"

	defaultTimeout = 30 * time.Second
)

// APIClient talks to the cricket image chatbot backend. The backend
// authenticates with a server-issued session cookie captured at login
// and replayed on every request.
type APIClient struct {
	baseURL    string
	session    string
	httpClient *http.Client
}

// NewAPIClientWithCmd creates an APIClient with config cascade:
// flag -> env -> global config -> default. If cmd is nil, skips flag
// checking and goes directly to env -> global config.
func NewAPIClientWithCmd(cmd *cobra.Command) (*APIClient, error) {
	var baseURL string

	if cmd != nil {
		if flagURL, err := cmd.Flags().GetString("api-url"); err == nil && flagURL != "" {
			baseURL = flagURL
		}
	}

	if baseURL == "" {
		baseURL = os.Getenv(envAPIURL)
	}

	var session string
	globalConfig, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	if globalConfig != nil {
		if baseURL == "" && globalConfig.APIURL != "" {
			baseURL = globalConfig.APIURL
		}
		session = globalConfig.Session
	}

	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return NewAPIClientWithConfig(baseURL, session), nil
}

func NewAPIClient() (*APIClient, error) {
	_ = godotenv.Load()
	return NewAPIClientWithCmd(nil)
}

// NewAPIClientWithConfig creates an APIClient with explicit config
// (used by login before a session exists).
func NewAPIClientWithConfig(baseURL, session string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		session: session,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetTimeout overrides the HTTP client timeout.
func (c *APIClient) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// BaseURL returns the backend URL this client targets.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// HasSession reports whether the client carries a stored session
// cookie. The backend still decides whether it is valid.
func (c *APIClient) HasSession() bool {
	return c.session != ""
}

// APIError represents a transport-level error from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// RequestOptions contains optional settings for HTTP requests.
type RequestOptions struct {
	IdempotencyKey string
}

// Get performs a GET request and decodes the JSON response into out.
func (c *APIClient) Get(path string, out any) error {
	_, err := c.do("GET", path, nil, out, RequestOptions{})
	return err
}

// Post performs a POST request with a JSON body and decodes the JSON
// response into out.
func (c *APIClient) Post(path string, body, out any) error {
	_, err := c.do("POST", path, body, out, RequestOptions{})
	return err
}

// PostWithOptions performs a POST request with JSON body and options.
func (c *APIClient) PostWithOptions(path string, body, out any, opts RequestOptions) error {
	_, err := c.do("POST", path, body, out, opts)
	return err
}

// PostForSession performs a POST and returns the session cookie the
// server issued, serialized for replay in a Cookie header. Empty when
// the response set no cookie.
func (c *APIClient) PostForSession(path string, body, out any) (string, error) {
	resp, err := c.do("POST", path, body, out, RequestOptions{})
	if err != nil {
		return "", err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session" {
			return cookie.Name + "=" + cookie.Value, nil
		}
	}
	return "", nil
}

func (c *APIClient) do(method, path string, body, out any, opts RequestOptions) (*http.Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.Header.Set("Cookie", c.session)
	}
	if opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return resp, nil
}
