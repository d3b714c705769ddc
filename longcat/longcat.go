// Package longcat implements the ChatProvider interface for the LongCat
// hosted model, an OpenAI-compatible chat completions API. The system prompt
// is injected as the leading system message of a structured message list.
package longcat

import (
	"context"
	"errors"
	"net/http"
	"time"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/internal/clientutils"
	"github.com/aivrasol/aiva/internal/sliceutils"
	"github.com/aivrasol/aiva/internal/tracing"
	"github.com/aivrasol/aiva/longcat/longcatapi"
)

const Provider = "longcat"

const (
	DefaultURL   = "https://api.longcat.chat/openai/v1/chat/completions"
	DefaultModel = "LongCat-Flash-Chat"
)

const (
	temperature = 0.8
	maxTokens   = 300

	// the reference deployment sets no timeout; a bounded one is safer
	requestTimeout = 30 * time.Second
)

// NoReplyFallback is returned with a nil error when the upstream answers 200
// but carries no usable message content.
const NoReplyFallback = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

type Options struct {
	URL    string
	APIKey string
	Model  string
}

// Model implements the ChatProvider interface for LongCat.
type Model struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// New creates a LongCat provider instance.
func New(options Options) *Model {
	url := options.URL
	if url == "" {
		url = DefaultURL
	}
	model := options.Model
	if model == "" {
		model = DefaultModel
	}

	return &Model{
		url:    url,
		apiKey: options.APIKey,
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Provider returns the provider name
func (m *Model) Provider() string {
	return Provider
}

// Send forwards the conversation and returns the assistant reply text.
func (m *Model) Send(ctx context.Context, systemPrompt string, history []aiva.Message) (string, error) {
	return tracing.TraceSend(ctx, Provider, m.model, len(history), func(ctx context.Context) (string, error) {
		params := convertToChatCompletionParams(m.model, systemPrompt, history)

		completion, err := clientutils.DoJSON[longcatapi.ChatCompletion](ctx, m.client, clientutils.JSONRequestConfig{
			URL:  m.url,
			Body: params,
			Headers: map[string]string{
				"Authorization": "Bearer " + m.apiKey,
			},
		})
		if err != nil {
			var httpErr *clientutils.HTTPError
			if errors.As(err, &httpErr) {
				if httpErr.Status == http.StatusTooManyRequests {
					return "", aiva.NewRateLimitedError(Provider, httpErr.Status)
				}
				return "", aiva.NewUnavailableError(Provider, httpErr.Status, httpErr.Body)
			}
			return "", aiva.NewTransportError(Provider, err)
		}

		if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
			return NoReplyFallback, nil
		}
		return completion.Choices[0].Message.Content, nil
	})
}

func convertToChatCompletionParams(model, systemPrompt string, history []aiva.Message) longcatapi.ChatCompletionParams {
	messages := make([]longcatapi.Message, 0, len(history)+1)
	messages = append(messages, longcatapi.Message{
		Role:    string(aiva.RoleSystem),
		Content: systemPrompt,
	})
	messages = append(messages, sliceutils.Map(history, func(msg aiva.Message) longcatapi.Message {
		role := string(msg.Role)
		if role == "" {
			role = string(aiva.RoleUser)
		}
		return longcatapi.Message{Role: role, Content: msg.Content}
	})...)

	return longcatapi.ChatCompletionParams{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
