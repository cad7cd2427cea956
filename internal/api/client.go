package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// Endpoint names, used for logs and metrics labels.
const (
	EndpointAnalyses        = "analyses"
	EndpointRecommendations = "ai_recommendations"
	EndpointChatbot         = "chatbot"
	EndpointHealth          = "health"
)

// Messages shown in place of the content a failed request would have filled.
const (
	MsgAnalysesFailed        = "Failed to load analysis data"
	MsgRecommendationsFailed = "Failed to load AI recommendations"
	MsgChatFailed            = "Failed to get response"
	MsgHealthFailed          = "Failed to reach backend"
)

// Fetcher is the transport the client depends on. *httpkit.Client
// satisfies it.
type Fetcher interface {
	FetchAndDecodeJSON(ctx context.Context, url string, v any) error
	PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error)
}

var _ Fetcher = (*httpkit.Client)(nil)

// NewFetcher builds the default transport. Requests are not retried.
func NewFetcher(timeout time.Duration) *httpkit.Client {
	return httpkit.New(timeout, httpkit.WithMaxRetries(0))
}

// RequestError carries the user-facing message of a failed request and
// the underlying cause.
type RequestError struct {
	Endpoint string
	Message  string
	Err      error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// ClientError reports whether the backend rejected the request itself
// (a 4xx answer) rather than failing to serve it.
func (e *RequestError) ClientError() bool {
	return httpkit.IsNonRetryableError(e.Err)
}

// Observer is notified once per settled request.
type Observer func(endpoint string, err error, elapsed time.Duration)

type Option func(*Client)

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// Client consumes the analysis backend's JSON API. Every call settles
// exactly once into a Result; there is no retry and no shared cache.
type Client struct {
	base     *url.URL
	fetcher  Fetcher
	logger   *slog.Logger
	observer Observer
}

func New(baseURL string, fetcher Fetcher, logger *slog.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("could not parse backend URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend URL must use http or https: %q", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{base: base, fetcher: fetcher, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves path (and optional query) against the backend base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Analyses fetches GET /api/analyses.
func (c *Client) Analyses(ctx context.Context) Result[[]AnalysisSummary] {
	var out []AnalysisSummary
	err := c.get(ctx, EndpointAnalyses, c.URL("/api/analyses", nil), MsgAnalysesFailed, &out)
	if err != nil {
		return Err[[]AnalysisSummary](err)
	}
	if out == nil {
		out = []AnalysisSummary{}
	}
	return Ok(out)
}

// Recommendations fetches GET /api/ai-recommendations/{analysisID}.
func (c *Client) Recommendations(ctx context.Context, analysisID int) Result[Recommendations] {
	var out Recommendations
	target := c.URL("/api/ai-recommendations/"+strconv.Itoa(analysisID), nil)
	if err := c.get(ctx, EndpointRecommendations, target, MsgRecommendationsFailed, &out); err != nil {
		return Err[Recommendations](err)
	}
	return Ok(out)
}

// Chat posts a message to the chatbot. analysisID may be empty when the
// chat has no report context.
func (c *Client) Chat(ctx context.Context, analysisID, message string) Result[ChatReply] {
	var query url.Values
	if analysisID != "" {
		query = url.Values{"analysis_id": {analysisID}}
	}
	target := c.URL("/api/chatbot", query)

	logger := c.logger.With(slog.String("endpoint", EndpointChatbot))
	logger.DebugContext(ctx, "Sending chat message", slog.String("analysis_id", analysisID))

	start := time.Now()
	body, err := c.fetcher.PostJSONAndFetchBytes(ctx, target, ChatRequest{Message: message})

	var out ChatReply
	if err == nil {
		err = decode(body, &out)
	}
	if err != nil {
		err = c.settle(ctx, logger, EndpointChatbot, MsgChatFailed, start, err)
		return Err[ChatReply](err)
	}
	c.settle(ctx, logger, EndpointChatbot, "", start, nil)
	return Ok(out)
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) Result[Health] {
	var out Health
	if err := c.get(ctx, EndpointHealth, c.URL("/health", nil), MsgHealthFailed, &out); err != nil {
		return Err[Health](err)
	}
	return Ok(out)
}

func (c *Client) get(ctx context.Context, endpoint, target, msg string, out any) error {
	logger := c.logger.With(slog.String("endpoint", endpoint))
	logger.DebugContext(ctx, "Fetching", slog.String("url", target))

	start := time.Now()
	if err := c.fetcher.FetchAndDecodeJSON(ctx, target, out); err != nil {
		return c.settle(ctx, logger, endpoint, msg, start, err)
	}
	c.settle(ctx, logger, endpoint, "", start, nil)
	return nil
}

// settle logs the outcome, notifies the observer and wraps failures.
func (c *Client) settle(ctx context.Context, logger *slog.Logger, endpoint, msg string, start time.Time, err error) error {
	elapsed := time.Since(start)

	if err != nil {
		err = &RequestError{Endpoint: endpoint, Message: msg, Err: err}
		logger.WarnContext(ctx, "Request failed",
			slog.Any("error", errorCause(err)),
			slog.Duration("elapsed", elapsed),
		)
	} else {
		logger.InfoContext(ctx, "Request succeeded", slog.Duration("elapsed", elapsed))
	}

	if c.observer != nil {
		c.observer(endpoint, err, elapsed)
	}
	return err
}

func errorCause(err error) error {
	if re, ok := err.(*RequestError); ok && re.Err != nil {
		return re.Err
	}
	return err
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
