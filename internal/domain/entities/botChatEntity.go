package entities

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// BotChat is one user's conversation with the assistant. It is created
// lazily on the first message and only ever grows by appended messages.
type BotChat struct {
	UserID    string        `json:"user_id" bson:"user_id"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ChatMessage content is an ordered list of lines; user messages carry a
// single line, assistant messages keep the generated answer lines as-is.
type ChatMessage struct {
	Role      string    `json:"role" bson:"role"`
	Content   []string  `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// LastMessages returns up to n of the most recent messages, newest last.
func (bc *BotChat) LastMessages(n int) []ChatMessage {
	if n <= 0 || len(bc.Messages) == 0 {
		return nil
	}
	if len(bc.Messages) <= n {
		return bc.Messages
	}
	return bc.Messages[len(bc.Messages)-n:]
}
