package dailyquest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ChoiBongGeun/DailyQuest/internal/source"
)

// Client is a thin HTTP client for the DailyQuest backend REST API.
// It handles Bearer token authentication, the ApiResponse envelope,
// and automatic retry with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new backend client. The baseURL should be the root
// URL of the DailyQuest server (e.g. https://dailyquest.example.com).
// The token is the JWT issued at login.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
	}
}

// get performs an HTTP GET request and unmarshals the envelope's data
// field into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request GET %s: %w", path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			waitDuration := retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (429) on GET %s", path)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &source.AuthError{
				Message: "session expired: log in again to refresh your token",
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var env apiEnvelope
			if json.Unmarshal(respBody, &env) == nil && env.Message != "" {
				return fmt.Errorf(
					"dailyquest API error (%d) on GET %s: %s",
					resp.StatusCode, path, env.Message,
				)
			}
			return fmt.Errorf(
				"dailyquest API error (%d) on GET %s", resp.StatusCode, path,
			)
		}

		return decodeEnvelope(respBody, path, result)
	}

	return fmt.Errorf("retries exhausted on GET %s: %w", path, lastErr)
}

// decodeEnvelope validates the ApiResponse wrapper and unmarshals its data
// field into result.
func decodeEnvelope(body []byte, path string, result interface{}) error {
	var env struct {
		apiEnvelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
	}

	if !env.Success {
		return fmt.Errorf(
			"dailyquest API failure on GET %s: %s", path, env.Message,
		)
	}

	if result == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("unmarshaling data from GET %s: %w", path, err)
	}
	return nil
}

// retryAfterDuration computes the wait before the next retry, honoring the
// Retry-After header when present and falling back to exponential backoff.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if h := resp.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<uint(attempt)) * time.Second
}
