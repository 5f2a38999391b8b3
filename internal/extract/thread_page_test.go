package extract

import (
	"testing"
)

// A minified thread page the way the export tool writes it: messages
// newest-first, sender and date in a header block, body in a following
// paragraph.
const samplePage = `<html><body><div class="thread">Conversation with: Alice Wonder` +
	`<div class="message"><div class="message_header">` +
	`<span class="user">Alice Wonder</span>` +
	`<span class="meta">Saturday, June 10, 2017 at 1:20pm UTC+02</span>` +
	`</div></div><p>bye then</p>` +
	`<div class="message"><div class="message_header">` +
	`<span class="user">John Doe</span>` +
	`<span class="meta">Saturday, June 10, 2017 at 1:16pm UTC+02</span>` +
	`</div></div><p></p>` +
	`<div class="message"><div class="message_header">` +
	`<span class="user">Alice Wonder</span>` +
	`<span class="meta">Saturday, June 10, 2017 at 1:15pm UTC+02</span>` +
	`</div></div><p>hi John</p>` +
	`</div></body></html>`

func TestThreadPage_Extract(t *testing.T) {
	conv, ok := ThreadPageParser{}.TryExtract([]byte(samplePage))
	if !ok {
		t.Fatal("expected a conversation")
	}
	if len(conv.Participants) != 1 || conv.Participants[0] != "Alice Wonder" {
		t.Fatalf("unexpected participants: %v", conv.Participants)
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}
	// Page is newest-first; output must be chronological ascending.
	for i := 1; i < len(conv.Messages); i++ {
		if conv.Messages[i].SentAt.Before(conv.Messages[i-1].SentAt) {
			t.Fatalf("messages out of order at %d", i)
		}
	}
	first := conv.Messages[0]
	if first.Sender != "Alice Wonder" || first.Text == nil || *first.Text != "hi John" {
		t.Fatalf("unexpected first message: %+v", first)
	}
}

func TestThreadPage_AttachmentOnlyMessageKept(t *testing.T) {
	conv, ok := ThreadPageParser{}.TryExtract([]byte(samplePage))
	if !ok {
		t.Fatal("expected a conversation")
	}
	// The middle message closed its paragraph without any body text.
	mid := conv.Messages[1]
	if mid.Sender != "John Doe" {
		t.Fatalf("unexpected sender: %q", mid.Sender)
	}
	if mid.Text != nil {
		t.Fatalf("attachment-only message should have absent text, got %q", *mid.Text)
	}
}

func TestThreadPage_MultipleParticipants(t *testing.T) {
	page := `<html><body><div class="thread">Conversation with: Alice, Bob, Carol` +
		`<div class="message"><div class="message_header">` +
		`<span class="user">Bob</span>` +
		`<span class="meta">Saturday, June 10, 2017 at 1:15pm UTC+02</span>` +
		`</div></div><p>hello all</p></div></body></html>`
	conv, ok := ThreadPageParser{}.TryExtract([]byte(page))
	if !ok {
		t.Fatal("expected a conversation")
	}
	want := []string{"Alice", "Bob", "Carol"}
	if len(conv.Participants) != len(want) {
		t.Fatalf("expected %d participants, got %v", len(want), conv.Participants)
	}
	for i, p := range want {
		if conv.Participants[i] != p {
			t.Fatalf("participant %d: expected %q, got %q", i, p, conv.Participants[i])
		}
	}
}

func TestThreadPage_NothingUsable(t *testing.T) {
	if _, ok := (ThreadPageParser{}).TryExtract([]byte("<html><body><p>no thread here</p></body></html>")); ok {
		t.Fatal("expected no conversation from unrelated markup")
	}
}
