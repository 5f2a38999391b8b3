package model

import "time"

// Message is one message inside a conversation. Text is nil for
// attachment-only messages (stickers, photos, files) that carry no body;
// SentAt is always set, since chronological ordering depends on it.
type Message struct {
	Sender string
	Text   *string
	SentAt time.Time
}

// Chars returns the number of characters in the message body, zero when
// the body is absent. Character here means rune, not byte, so multi-byte
// text counts the way a person would count it.
func (m Message) Chars() int {
	if m.Text == nil {
		return 0
	}
	return len([]rune(*m.Text))
}

// Conversation is one thread: a display title, the other participants
// (owner excluded, source order, unique) and messages in chronological
// ascending order.
type Conversation struct {
	Title        string
	Participants []string
	Messages     []Message
}

// IsGroup reports whether the conversation has more than one participant
// besides the owner.
func (c Conversation) IsGroup() bool {
	return len(c.Participants) > 1
}

// Archive is the full parsed dataset for one export: the owner's display
// name and every conversation that survived extraction. It is built once
// and read-only afterwards.
type Archive struct {
	OwnerName     string
	Conversations []Conversation
}

// Ptr returns a pointer to s. Keeps message construction readable where a
// present-but-possibly-empty body is assigned.
func Ptr(s string) *string {
	return &s
}
