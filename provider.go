package aiva

import "context"

// ChatProvider relays a conversation to a hosted chat-completion API and
// returns the assistant reply text. The system prompt is passed separately
// because each integration injects it into the request differently.
//
// Send returns either a renderable reply string or a *ChatError; providers
// may also return a fixed fallback string with a nil error when the upstream
// answers successfully but carries no usable content.
type ChatProvider interface {
	Provider() string
	Send(ctx context.Context, systemPrompt string, history []Message) (string, error)
}
