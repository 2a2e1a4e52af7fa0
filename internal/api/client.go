package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/go-storefront/internal/dto"
)

var (
	// ErrNetwork wraps transport failures where no response was received.
	ErrNetwork = errors.New("network error")
	// ErrTimeout is returned by Probe when the backend does not answer
	// within the probe window.
	ErrTimeout = errors.New("connection timeout")
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// TokenSource supplies the bearer credential for outbound calls. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client wraps http.Client for the backend REST contract: base-URL joining,
// JSON headers, bearer token, request ids, envelope decoding. Calls carry
// no timeout beyond the caller's context; only Probe is time-bounded.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	tokens       TokenSource
	probeTimeout time.Duration
	log          *slog.Logger
}

func NewClient(baseURL string, probeTimeout time.Duration, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
		tokens:       tokens,
		probeTimeout: probeTimeout,
		log:          log,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*dto.Envelope, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*dto.Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*dto.Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*dto.Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Probe checks backend reachability with a fixed timeout. It is the only
// time-bounded call in the client.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	_, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*dto.Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.log.Debug("backend request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var envelope dto.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &envelope, nil
}
