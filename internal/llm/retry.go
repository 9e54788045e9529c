package llm

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

const (
	// maxAttempts is the total attempt budget for a completion call.
	maxAttempts = 3

	// minBackoff and maxBackoff clamp the exponential backoff window.
	minBackoff = 2 * time.Second
	maxBackoff = 10 * time.Second
)

// BackoffFunc computes the delay before retry attempt n (1-based).
type BackoffFunc func(attempt int) time.Duration

// SleepFunc waits for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// defaultBackoff doubles the delay per attempt, clamped to [minBackoff, maxBackoff].
func defaultBackoff(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	if d < minBackoff {
		d = minBackoff
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Client wraps a Provider with retry, backoff, logging, and tracing.
// Non-retryable failures and exhausted retry budgets surface as errors;
// transient failures are retried with exponential backoff.
type Client struct {
	provider Provider
	logger   *slog.Logger
	tracer   trace.Tracer
	backoff  BackoffFunc
	sleep    SleepFunc
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracer sets the tracer for the client.
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// WithBackoff overrides the backoff schedule. Tests use this to avoid
// real multi-second sleeps.
func WithBackoff(backoff BackoffFunc) ClientOption {
	return func(c *Client) {
		c.backoff = backoff
	}
}

// WithSleep overrides the sleep implementation.
func WithSleep(sleep SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient creates a retrying client around the given provider.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("llm"),
		backoff:  defaultBackoff,
		sleep:    defaultSleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the wrapped provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Complete runs the completion with up to maxAttempts attempts. Only
// errors classified retryable consume retry budget; everything else
// fails immediately.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, types.WrapError(types.LLM_COMPLETION_FAILED, "invalid completion request", err)
	}

	ctx, span := c.tracer.Start(ctx, "llm.complete")
	defer span.End()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = TranslateError(c.provider.Name(), err)
		if !IsRetryable(lastErr) {
			return nil, lastErr
		}
		if attempt == maxAttempts {
			break
		}

		delay := c.backoff(attempt)
		c.logger.Warn("completion failed, retrying",
			"provider", c.provider.Name(),
			"attempt", attempt,
			"backoff", delay,
			"error", lastErr)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, types.WrapError(types.LLM_COMPLETION_FAILED,
				"completion cancelled during backoff", err)
		}
	}

	return nil, lastErr
}

// CompleteText is a convenience helper for single-prompt completions.
// It sends the prompt as a user message and returns the response text.
func (c *Client) CompleteText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		Messages: []Message{NewUserMessage(prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// Health reports the health of the underlying provider.
func (c *Client) Health(ctx context.Context) types.HealthStatus {
	return c.provider.Health(ctx)
}
