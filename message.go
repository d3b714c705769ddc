package aiva

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single utterance in a conversation. Conversations are
// supplied by the caller on every request; nothing is remembered between
// calls.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
