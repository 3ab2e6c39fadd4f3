package fitlifeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
)

const DefaultBaseURL = "https://fitlife-ai-api.vercel.app/api"

// APIError is a non-2xx reply from the FitLife API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fitlife api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("fitlife api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the remote FitLife API. It is safe for concurrent use
// as long as the auth token is set before serving traffic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetAuthToken sets the bearer token sent with every request.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

type errorReply struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do issues a request against path (which may carry a query string),
// marshalling body if non-nil and unmarshalling the reply into dst if
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, dst any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitlifeapi.do")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	authToken := c.authToken
	if ctxToken, ok := TokenFromContext(ctx); ok {
		authToken = ctxToken
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var reply errorReply
		if err := json.Unmarshal(respBytes, &reply); err == nil {
			apiErr.Message = reply.Error
			if apiErr.Message == "" {
				apiErr.Message = reply.Message
			}
		}
		return apiErr
	}

	if dst != nil {
		if err := json.Unmarshal(respBytes, dst); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func query(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
