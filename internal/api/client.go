package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fooddash-client/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Outbound politeness limit. The hosted backend is a small free-tier
// deployment, so the client caps its own request rate.
const (
	requestRate  = rate.Limit(20)
	requestBurst = 40
)

// TokenSource supplies the bearer token for an outgoing request. The session
// manager implements it; an empty token means the request goes out
// unauthenticated. Authorization is resolved per request so there is no
// process-global header map to corrupt.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource, mostly useful in tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client issues JSON requests against the delivery API and normalizes the
// two known response shapes into raw entity payloads.
type Client struct {
	baseURL    string
	variant    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenSource
}

// NewClient creates a client for the given base URL. variant selects the
// response-shape normalization (VariantBare or VariantEnvelope).
// tokens may be nil for a client that never authenticates.
func NewClient(baseURL, variant string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		variant:    variant,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(requestRate, requestBurst),
		tokens:     tokens,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqID := uuid.New().String()
	ctx = logger.WithRequestID(ctx, reqID)

	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to marshal request body", zap.Error(err))
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := c.bearerToken(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return fmt.Errorf("%v: %w", err, ErrNetwork)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("read response: %w", ErrNetwork)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("server returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return statusError(resp.StatusCode, respBody)
	}

	payload, err := c.normalize(respBody)
	if err != nil {
		log.Error("failed to normalize response", zap.Error(err))
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Error("failed to decode response", zap.Error(err))
		return fmt.Errorf("decode response: %v: %w", err, ErrData)
	}
	return nil
}

// bearerToken resolves the token for one request: a context override wins,
// then the client's TokenSource. false means no Authorization header at all.
func (c *Client) bearerToken(ctx context.Context) (string, bool) {
	if tok, ok := tokenFromCtx(ctx); ok {
		return tok, tok != ""
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			return tok, true
		}
	}
	return "", false
}

// statusError maps an HTTP status to one of the client error kinds, keeping
// the server's own message when it sent one.
func statusError(status int, body []byte) error {
	msg := serverMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, ErrInvalidCredentials)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", msg, ErrValidation)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", msg, ErrNetwork)
	default:
		return fmt.Errorf("%s: %w", msg, ErrOperationRejected)
	}
}

// serverMessage pulls a human-readable message out of an error body, if the
// server bothered to send JSON.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
