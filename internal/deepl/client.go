// Package deepl implements a minimal client for the DeepL REST API:
// text translation and account usage.
package deepl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIURL = "https://api.deepl.com"
	freeAPIURL    = "https://api-free.deepl.com"

	defaultTimeout = 30 * time.Second
)

// Client is a DeepL API client. Thread-safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a DeepL client. Keys issued for the free plan carry
// an ":fx" suffix and are routed to the free endpoint.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}

	baseURL := defaultAPIURL
	if strings.HasSuffix(apiKey, ":fx") {
		baseURL = freeAPIURL
	}

	client := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// TranslateText translates text into targetLang. sourceLang may be
// empty, in which case the provider auto-detects it.
func (c *Client) TranslateText(ctx context.Context, text, targetLang, sourceLang string) (*Translation, error) {
	request := TranslateRequest{
		Text:       []string{text},
		TargetLang: targetLang,
		SourceLang: sourceLang,
	}

	var response translationsResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/v2/translate", request, &response); err != nil {
		return nil, err
	}

	if len(response.Translations) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}
	return &response.Translations[0], nil
}

// GetUsage returns the characters consumed and the account limit.
func (c *Client) GetUsage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := c.makeRequest(ctx, http.MethodGet, "/v2/usage", nil, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

// makeRequest makes a raw HTTP request to the DeepL API and decodes the
// JSON response into out.
func (c *Client) makeRequest(ctx context.Context, method, path string, payload, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return fmt.Errorf("request timed out: %w", err)
		}
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody apiErrorBody
		if err := json.Unmarshal(responseBody, &errBody); err == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
