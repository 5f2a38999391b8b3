package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

func msg(sender, text string, at int64) model.Message {
	return model.Message{Sender: sender, Text: model.Ptr(text), SentAt: time.Unix(at, 0)}
}

func TestAddOrMerge_Fragments(t *testing.T) {
	s := New()
	s.AddOrMerge("inbox/alice", &model.Conversation{
		Title:        "Alice",
		Participants: []string{"Alice", "Me"},
		Messages:     []model.Message{msg("Alice", "one", 1), msg("Me", "two", 2)},
	})
	s.AddOrMerge("inbox/alice", &model.Conversation{
		Title:        "renamed later",
		Participants: []string{"Someone Else"},
		Messages:     []model.Message{msg("Alice", "three", 3)},
	})

	if s.Len() != 1 {
		t.Fatalf("expected one thread, got %d", s.Len())
	}
	a := s.Archive("Me")
	if len(a.Conversations) != 1 {
		t.Fatalf("expected one conversation, got %d", len(a.Conversations))
	}
	c := a.Conversations[0]
	// First fragment's title and participants win.
	if c.Title != "Alice" {
		t.Fatalf("unexpected title: %q", c.Title)
	}
	if !reflect.DeepEqual(c.Participants, []string{"Alice"}) {
		t.Fatalf("unexpected participants: %v", c.Participants)
	}
	if len(c.Messages) != 3 || *c.Messages[2].Text != "three" {
		t.Fatalf("fragments not concatenated: %+v", c.Messages)
	}
}

func TestMerge_Associativity(t *testing.T) {
	reference := []model.Message{
		msg("A", "1", 1), msg("B", "2", 2), msg("A", "3", 3),
		msg("B", "4", 4), msg("A", "5", 5),
	}
	conv := func(ms []model.Message) *model.Conversation {
		return &model.Conversation{Title: "T", Participants: []string{"A", "B"}, Messages: ms}
	}

	// All contiguous three-way splits must merge to the reference.
	for i := 0; i <= len(reference); i++ {
		for j := i; j <= len(reference); j++ {
			s := New()
			s.AddOrMerge("t", conv(reference[:i]))
			s.AddOrMerge("t", conv(reference[i:j]))
			s.AddOrMerge("t", conv(reference[j:]))
			got := s.Archive("Me").Conversations[0].Messages
			if !reflect.DeepEqual(got, reference) {
				t.Fatalf("split (%d,%d) diverged: %+v", i, j, got)
			}
		}
	}
}

func TestArchive_NormalizesParticipants(t *testing.T) {
	s := New()
	s.AddOrMerge("t", &model.Conversation{
		Title:        "T",
		Participants: []string{"Me", "Alice", "Alice", "", "Bob"},
		Messages:     []model.Message{msg("Alice", "x", 1)},
	})
	a := s.Archive("Me")
	got := a.Conversations[0].Participants
	if !reflect.DeepEqual(got, []string{"Alice", "Bob"}) {
		t.Fatalf("unexpected participants: %v", got)
	}
}

func TestArchive_DropsSelfAndEmptyConversations(t *testing.T) {
	s := New()
	s.AddOrMerge("self", &model.Conversation{
		Title:        "just me",
		Participants: []string{"Me"},
		Messages:     []model.Message{msg("Me", "note", 1)},
	})
	s.AddOrMerge("quiet", &model.Conversation{
		Title:        "no messages",
		Participants: []string{"Alice"},
	})
	a := s.Archive("Me")
	if len(a.Conversations) != 0 {
		t.Fatalf("expected both conversations dropped, got %+v", a.Conversations)
	}
}

func TestFiltered_DoesNotMutate(t *testing.T) {
	s := New()
	s.AddOrMerge("one", &model.Conversation{
		Title:        "pair",
		Participants: []string{"Alice"},
		Messages:     []model.Message{msg("Alice", "x", 1)},
	})
	s.AddOrMerge("grp", &model.Conversation{
		Title:        "group",
		Participants: []string{"Alice", "Bob"},
		Messages:     []model.Message{msg("Bob", "y", 2)},
	})
	a := s.Archive("Me")

	solo := WithoutGroupChats(a)
	if len(solo.Conversations) != 1 || solo.Conversations[0].Title != "pair" {
		t.Fatalf("unexpected filter result: %+v", solo.Conversations)
	}
	if len(a.Conversations) != 2 {
		t.Fatal("filtering mutated the underlying archive")
	}

	busy := MinMessages(a, 2)
	if len(busy.Conversations) != 0 {
		t.Fatalf("expected no conversation with 2+ messages, got %+v", busy.Conversations)
	}
}
