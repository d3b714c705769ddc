// Package gemini implements the ChatProvider interface for the Gemini
// generative language API. The upstream takes one plain-text blob rather
// than a structured message list, so the whole conversation is flattened
// into "role: content" lines. Free-tier quotas are tight, so calls are
// paced to a minimum interval and 429s are retried with exponential
// backoff.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/gemini/geminiapi"
	"github.com/aivrasol/aiva/internal/clientutils"
	"github.com/aivrasol/aiva/internal/tracing"
)

const Provider = "gemini"

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
)

const (
	// minimum spacing between consecutive upstream calls
	minCallInterval = 1200 * time.Millisecond
	// additional attempts after the first, doubling the wait each time
	maxRetries     = 3
	initialBackoff = 1000 * time.Millisecond

	requestTimeout = 30 * time.Second
)

// NoReplyFallback is returned with a nil error when the upstream answers 200
// but carries no candidate text.
const NoReplyFallback = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

type Options struct {
	// URL is the full generateContent endpoint. When empty it is derived
	// from DefaultBaseURL and Model.
	URL    string
	APIKey string
	Model  string
}

// Model implements the ChatProvider interface for Gemini.
type Model struct {
	url    string
	apiKey string
	model  string
	client *http.Client

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// pacing state shared by every request through this instance
	mu       sync.Mutex
	lastCall time.Time
}

// New creates a Gemini provider instance.
func New(options Options) *Model {
	model := options.Model
	if model == "" {
		model = DefaultModel
	}
	endpoint := options.URL
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/v1beta/models/%s:generateContent", DefaultBaseURL, model)
	}

	return &Model{
		url:    endpoint,
		apiKey: options.APIKey,
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// WithClock overrides the time source and sleeper, for tests.
func (m *Model) WithClock(now func() time.Time, sleep func(context.Context, time.Duration) error) *Model {
	m.now = now
	m.sleep = sleep
	return m
}

// Provider returns the provider name
func (m *Model) Provider() string {
	return Provider
}

// Send forwards the flattened conversation and returns the assistant reply
// text, retrying rate limits and transient failures before giving up.
func (m *Model) Send(ctx context.Context, systemPrompt string, history []aiva.Message) (string, error) {
	return tracing.TraceSend(ctx, Provider, m.model, len(history), func(ctx context.Context) (string, error) {
		params := geminiapi.GenerateContentParams{
			Contents: []geminiapi.Content{{
				Parts: []geminiapi.Part{{Text: flattenConversation(systemPrompt, history)}},
			}},
		}

		var lastErr error
		backoff := initialBackoff
		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				if err := m.sleep(ctx, backoff); err != nil {
					return "", aiva.NewTransportError(Provider, err)
				}
				backoff *= 2
			}
			if err := m.pace(ctx); err != nil {
				return "", aiva.NewTransportError(Provider, err)
			}

			response, err := clientutils.DoJSON[geminiapi.GenerateContentResponse](ctx, m.client, clientutils.JSONRequestConfig{
				URL:  m.requestURL(),
				Body: params,
			})
			if err == nil {
				return extractReply(response), nil
			}
			lastErr = err
		}

		var httpErr *clientutils.HTTPError
		if errors.As(lastErr, &httpErr) {
			if httpErr.Status == http.StatusTooManyRequests {
				return "", aiva.NewRateLimitedError(Provider, httpErr.Status)
			}
			return "", aiva.NewUnavailableError(Provider, httpErr.Status, httpErr.Body)
		}
		return "", aiva.NewTransportError(Provider, lastErr)
	})
}

// requestURL appends the API key as a query parameter. That is how this
// upstream authenticates; the key itself only ever comes from configuration.
func (m *Model) requestURL() string {
	return m.url + "?key=" + url.QueryEscape(m.apiKey)
}

// pace blocks until at least minCallInterval has elapsed since the previous
// upstream call through this instance, then claims the slot. A plain
// last-call timestamp, not a token bucket.
func (m *Model) pace(ctx context.Context) error {
	m.mu.Lock()
	var wait time.Duration
	if !m.lastCall.IsZero() {
		wait = minCallInterval - m.now().Sub(m.lastCall)
	}
	m.mu.Unlock()

	if wait > 0 {
		if err := m.sleep(ctx, wait); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.lastCall = m.now()
	m.mu.Unlock()
	return nil
}

func flattenConversation(systemPrompt string, history []aiva.Message) string {
	lines := make([]string, 0, len(history)+1)
	lines = append(lines, fmt.Sprintf("%s: %s", aiva.RoleSystem, systemPrompt))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func extractReply(response *geminiapi.GenerateContentResponse) string {
	if len(response.Candidates) > 0 {
		parts := response.Candidates[0].Content.Parts
		if len(parts) > 0 && parts[0].Text != "" {
			return parts[0].Text
		}
	}
	return NoReplyFallback
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
