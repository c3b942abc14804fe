package signa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL       = "https://signaapiv1-production.up.railway.app"
	DefaultTimeout       = 10 * time.Second
	DefaultUploadTimeout = 30 * time.Second

	maxErrorBody = 2048
)

// ResponseShape selects which wire contract the remote API speaks.
type ResponseShape string

const (
	// ResponseEnvelope: lists arrive as {"doctores": [...]}, creates as {"doctor": {...}}.
	ResponseEnvelope ResponseShape = "envelope"
	// ResponseBare: lists are bare arrays, creates are bare objects.
	ResponseBare ResponseShape = "bare"
)

// ParseResponseShape accepts "envelope" or "bare"; empty means envelope.
func ParseResponseShape(s string) (ResponseShape, error) {
	switch ResponseShape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ResponseEnvelope:
		return ResponseEnvelope, nil
	case ResponseBare:
		return ResponseBare, nil
	}
	return "", fmt.Errorf("signa: unknown response shape %q", s)
}

// Config holds the remote API settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	Shape         ResponseShape
}

// TokenSource yields the bearer token to attach, or "" when anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client is the typed client for the Signa clinical API.
type Client struct {
	cfg        Config
	rest       *resty.Client
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// New builds a client. Zero config values fall back to the package defaults.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}
	if cfg.Shape == "" {
		cfg.Shape = ResponseEnvelope
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	// Bounded waits come from per-call contexts; retries stay disabled.
	if c.httpClient != nil {
		c.rest = resty.NewWithClient(c.httpClient)
	} else {
		c.rest = resty.New()
	}
	c.rest.
		SetBaseURL(cfg.BaseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(c.logger.Sugar())
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// call describes one round trip.
type call struct {
	method    string
	path      string
	query     url.Values
	body      interface{}
	clip      *Clip
	want      Shape
	envelope  string // field holding the payload in envelope mode
	timeout   time.Duration
	anonymous bool
}

// do performs the round trip and returns the shape-checked payload.
func (c *Client) do(ctx context.Context, cl call) (json.RawMessage, error) {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := c.rest.R().SetContext(ctx)
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}
	if cl.clip != nil {
		req.SetMultipartField("file", cl.clip.Filename, cl.clip.ContentType, bytes.NewReader(cl.clip.Data))
	}
	if len(cl.query) > 0 {
		req.SetQueryParamsFromValues(cl.query)
	}
	if !cl.anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("signa: read token: %w", err)
		}
		if token != "" {
			req.SetAuthToken(token)
		}
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		err = c.classify(ctx, cl, timeout, err)
		c.logger.Warn("Signa API call failed",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("Signa API call",
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	if !resp.IsSuccess() {
		return nil, newHTTPError(resp)
	}
	return c.unwrap(cl, resp.Body())
}

func (c *Client) classify(ctx context.Context, cl call, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Path: cl.path, After: timeout}
	}
	if errors.Is(err, context.Canceled) {
		return &NetworkError{Err: err}
	}
	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return &ConnectionError{URL: c.cfg.BaseURL + cl.path, Err: err}
	}
	return &NetworkError{Err: err}
}

func newHTTPError(resp *resty.Response) *HTTPError {
	code := resp.StatusCode()
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	body := string(resp.Body())
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &HTTPError{Status: code, StatusText: text, Body: body}
}

// unwrap validates the top-level shape and strips the envelope when the
// configured contract uses one.
func (c *Client) unwrap(cl call, body []byte) (json.RawMessage, error) {
	raw := json.RawMessage(bytes.TrimSpace(body))
	if !json.Valid(raw) {
		return nil, &MalformedResponseError{Path: cl.path, Want: cl.want, Detail: "body is not valid JSON"}
	}

	if cl.envelope != "" && c.cfg.Shape == ResponseEnvelope {
		if got := shapeOf(raw); got != ShapeObject {
			return nil, &MalformedResponseError{Path: cl.path, Want: cl.want, Detail: "expected an envelope object, got " + got.String()}
		}
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, &MalformedResponseError{Path: cl.path, Want: cl.want, Detail: err.Error()}
		}
		inner, ok := env[cl.envelope]
		if !ok {
			return nil, &MalformedResponseError{Path: cl.path, Want: cl.want, Detail: fmt.Sprintf("missing %q field", cl.envelope)}
		}
		raw = bytes.TrimSpace(inner)
	}

	if got := shapeOf(raw); got != cl.want {
		return nil, &MalformedResponseError{Path: cl.path, Want: cl.want, Detail: "got " + got.String()}
	}
	return raw, nil
}

func shapeOf(raw []byte) Shape {
	if len(raw) == 0 {
		return shapeOther
	}
	switch raw[0] {
	case '{':
		return ShapeObject
	case '[':
		return ShapeArray
	}
	return shapeOther
}

// decode unmarshals a payload already checked by unwrap.
func decode(path string, want Shape, raw json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedResponseError{Path: path, Want: want, Detail: err.Error()}
	}
	return nil
}
