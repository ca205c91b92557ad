// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"quickload-admin/internal/common/errors"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/common/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"

	ClientPlain         = "plain"
	ClientAuthenticated = "authenticated"
)

// TokenSource supplies the bearer token read before every authenticated request.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// MultipartBody is anything that can render itself as a multipart/form-data body.
type MultipartBody interface {
	Encode() (io.Reader, string, error)
}

type Options struct {
	Name      string
	BaseURL   string
	Timeout   time.Duration
	Tokens    TokenSource
	Logger    logger.Logger
	Transport http.RoundTripper
}

// Client sends requests to one backend base URL. When Tokens is set it
// attaches the current access token; otherwise requests go out bare.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logger.Logger
}

func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	name := opts.Name
	if name == "" {
		name = ClientPlain
		if opts.Tokens != nil {
			name = ClientAuthenticated
		}
	}
	return &Client{
		name:    name,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		tokens: opts.Tokens,
		logger: log.WithFields(map[string]interface{}{"client": name}),
	}
}

// NewPlain returns a client that never sends credentials.
func NewPlain(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return NewClient(Options{Name: ClientPlain, BaseURL: baseURL, Timeout: timeout, Logger: log})
}

// NewAuthenticated returns a client that reads the access token from tokens
// before every request.
func NewAuthenticated(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger) *Client {
	return NewClient(Options{Name: ClientAuthenticated, BaseURL: baseURL, Timeout: timeout, Tokens: tokens, Logger: log})
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request and returns the raw 2xx body. Transport failures and
// non-2xx statuses come back as *errors.StandardError; nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := otel.Tracer("quickload-admin/http").Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("client", c.name),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		span.SetStatus(codes.Error, "request build failed")
		return nil, errors.NewRequestBuildError(method, path, err)
	}

	requestID := uuid.New().String()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	log := c.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"method":    method,
		"path":      path,
	})

	inFlight := metrics.APIRequestsInFlight.WithLabelValues(c.name)
	inFlight.Inc()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	inFlight.Dec()
	metrics.APIRequestDuration.WithLabelValues(c.name, method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(c.name, method, "error").Inc()
		log.Warn("backend request failed", map[string]interface{}{"error": err})
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, errors.NewNetworkError(method, path, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(c.name, method, strconv.Itoa(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("backend returned error status", map[string]interface{}{"status": resp.StatusCode})
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return nil, errors.NewHTTPStatusError(method, path, resp.StatusCode, string(data))
	}

	log.Debug("backend request completed", map[string]interface{}{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return data, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		// unreadable storage behaves like an absent token
		c.logger.Warn("failed to read access token", map[string]interface{}{"error": err})
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, "")
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, "")
}

// SendJSON marshals payload as the request body.
func (c *Client) SendJSON(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewRequestBuildError(method, path, err)
	}
	return c.Do(ctx, method, path, nil, bytes.NewReader(raw), "application/json")
}

// SendMultipart encodes form as multipart/form-data.
func (c *Client) SendMultipart(ctx context.Context, method, path string, form MultipartBody) ([]byte, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, errors.NewMultipartEncodeError(err)
	}
	return c.Do(ctx, method, path, nil, body, contentType)
}
