// Package completion wraps chat-completion calls with the retry policy, error
// taxonomy and response extraction shared by every RAG processor.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/proseward/proseward/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAttempts       = 3
	DefaultBackoff        = time.Second
	DefaultAttemptTimeout = 30 * time.Second
)

var (
	// ErrRetriesExhausted reports that every attempt in the retry budget
	// failed with a transient error. It is a terminal outcome distinct from
	// both success and non-retryable failure.
	ErrRetriesExhausted = errors.New("retry budget exhausted")

	// ErrNoChoices reports a well-formed response carrying no completions.
	ErrNoChoices = errors.New("response contained no choices")

	// ErrEmptyChoice reports a choice with no extractable content. One bad
	// choice fails the whole call, partial extraction is never returned.
	ErrEmptyChoice = errors.New("choice contained no content")
)

// Sink receives the per-call transcript. Implementations are best-effort;
// a Sink error is logged and otherwise ignored.
type Sink interface {
	Record(processor, text string, raw []byte) error
}

// Result is a successful call outcome. Correlation carries the caller-supplied
// value through unchanged so concurrent fan-out callers can map results back
// to their originating requests.
type Result struct {
	Text        string
	Correlation any
}

// Caller issues chat-completion requests with bounded retries. All state is
// immutable after construction, so a single Caller supports any number of
// concurrent in-flight calls.
type Caller struct {
	name           string
	client         providers.Client
	sink           Sink
	attempts       int
	backoff        time.Duration
	attemptTimeout time.Duration
	logger         *logrus.Logger
}

// Option tweaks a Caller at construction time.
type Option func(*Caller)

func WithAttempts(n int) Option {
	return func(c *Caller) {
		if n > 0 {
			c.attempts = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(c *Caller) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Caller) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// WithSink attaches a transcript sink. Without one the side channel is off.
func WithSink(sink Sink) Option {
	return func(c *Caller) { c.sink = sink }
}

// NewCaller builds a Caller named after the processor it serves; the name
// keys the transcript artifacts.
func NewCaller(name string, client providers.Client, logger *logrus.Logger, opts ...Option) *Caller {
	c := &Caller{
		name:           name,
		client:         client,
		attempts:       DefaultAttempts,
		backoff:        DefaultBackoff,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call sends the messages to the provider and returns the extracted completion
// text. The retry loop has exactly three terminal outcomes: success, an
// immediate non-retryable failure (provider bad request, extraction failure,
// cancellation), or ErrRetriesExhausted once the attempt budget is spent.
func (c *Caller) Call(ctx context.Context, messages []providers.Message, correlation any) (Result, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		resp, err := c.attemptOnce(ctx, messages)
		if err == nil {
			text, extractErr := extractText(resp)
			if extractErr != nil {
				return Result{}, fmt.Errorf("extracting completion: %w", extractErr)
			}
			c.record(text, resp)
			return Result{Text: text, Correlation: correlation}, nil
		}

		if errors.Is(err, providers.ErrBadRequest) {
			c.logger.WithError(err).WithField("caller", c.name).Error("non-retryable provider error")
			return Result{}, err
		}

		lastErr = err
		c.logger.WithError(err).WithFields(logrus.Fields{
			"caller":  c.name,
			"attempt": attempt,
		}).Warn("transient provider error")

		if attempt < c.attempts {
			if err := c.wait(ctx); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{}, fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, c.attempts, lastErr)
}

func (c *Caller) attemptOnce(ctx context.Context, messages []providers.Message) (*providers.CompletionResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()
	return c.client.ChatCompletion(attemptCtx, messages)
}

func (c *Caller) wait(ctx context.Context) error {
	if c.backoff <= 0 {
		return nil
	}
	timer := time.NewTimer(c.backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Caller) record(text string, resp *providers.CompletionResponse) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Record(c.name, text, resp.Raw); err != nil {
		c.logger.WithError(err).WithField("caller", c.name).Warn("failed to record transcript")
	}
}

// extractText joins the content of every choice with a newline. A response
// with no choices, or any choice without content, fails the whole call.
func extractText(resp *providers.CompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	parts := make([]string, len(resp.Choices))
	for i, choice := range resp.Choices {
		if choice.Content == "" {
			return "", fmt.Errorf("%w: choice %d", ErrEmptyChoice, i)
		}
		parts[i] = choice.Content
	}
	return strings.Join(parts, "\n"), nil
}
