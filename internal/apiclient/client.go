// Package apiclient provides typed REST clients for the diary resources.
// Every method is a single stateless request/response round-trip; callers
// own retries and caching.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "healthdiary/internal/errors"
)

const maxErrorBody = 64 << 10

// Client talks to the diary API on behalf of one user.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     uint
}

// Config configures the API client.
type Config struct {
	BaseURL string
	UserID  uint
	Timeout time.Duration
}

// New creates a new API client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userID := cfg.UserID
	if userID == 0 {
		userID = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userID:     userID,
	}
}

// do executes one JSON round-trip. A 404 maps to a not-found AppError so
// callers can distinguish absence from failure; any other non-2xx status
// maps to an external API error carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", strconv.FormatUint(uint64(c.userID), 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalAPIError(err, "diary")
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 400 {
		msg := serverMessage(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.New(apperrors.ErrorTypeNotFound, "NOT_FOUND", msg).
				WithContext("status", resp.StatusCode)
		}
		return apperrors.New(apperrors.ErrorTypeExternal, "HTTP_ERROR",
			fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, msg)).
			WithContext("status", resp.StatusCode)
	}

	if out == nil {
		_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalAPIError(fmt.Errorf("decode response: %w", err), "diary")
	}
	return nil
}

// serverMessage extracts {"error": "..."} from an error body, falling back
// to the raw text.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return "unreadable error body"
	}
	var wrapped struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error != "" {
		return wrapped.Error
	}
	return strings.TrimSpace(string(raw))
}
