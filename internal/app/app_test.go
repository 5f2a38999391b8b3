package app

import (
	"context"
	"path/filepath"
	"testing"
)

const threadFragment1 = `{
  "participants": [{"name": "Alice Wonder"}, {"name": "John Doe"}],
  "messages": [
    {"sender_name": "Alice Wonder", "content": "hey", "timestamp_ms": 1497093305000},
    {"sender_name": "John Doe", "content": "hi", "timestamp_ms": 1497093300000}
  ],
  "title": "Alice Wonder"
}`

const threadFragment2 = `{
  "participants": [{"name": "Alice Wonder"}, {"name": "John Doe"}],
  "messages": [
    {"sender_name": "Alice Wonder", "content": "bye", "timestamp_ms": 1497097000000}
  ],
  "title": "Alice Wonder"
}`

const groupThread = `{
  "participants": [{"name": "Alice Wonder"}, {"name": "Bob"}, {"name": "John Doe"}],
  "messages": [
    {"sender_name": "Bob", "content": "group hello", "timestamp_ms": 1497093300000}
  ],
  "title": "The Gang"
}`

func buildTestArchive(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "profile_information", "profile_information.json"),
		`{"profile": {"name": {"full_name": "John Doe"}}}`)
	writeFile(t, filepath.Join(root, "messages", "inbox", "alice_abc", "message_1.json"), threadFragment1)
	writeFile(t, filepath.Join(root, "messages", "inbox", "alice_abc", "message_2.json"), threadFragment2)
	writeFile(t, filepath.Join(root, "messages", "inbox", "gang_def", "message_1.json"), groupThread)
	writeFile(t, filepath.Join(root, "messages", "inbox", "broken_xyz", "message_1.json"), `{"title": `)
	return root
}

func TestBuildArchive_JSONLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = buildTestArchive(t)
	a := New(cfg)

	owner, err := a.ResolveOwnerName()
	if err != nil {
		t.Fatal(err)
	}
	if owner != "John Doe" {
		t.Fatalf("unexpected owner: %q", owner)
	}

	archive, err := a.BuildArchive(context.Background(), owner)
	if err != nil {
		t.Fatal(err)
	}
	// The group thread is excluded by default and the broken thread is
	// skipped, leaving the merged one-on-one conversation.
	if len(archive.Conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(archive.Conversations))
	}
	c := archive.Conversations[0]
	if c.Title != "Alice Wonder" {
		t.Fatalf("unexpected title: %q", c.Title)
	}
	if len(c.Messages) != 3 {
		t.Fatalf("fragments not merged, got %d messages", len(c.Messages))
	}
	for i := 1; i < len(c.Messages); i++ {
		if c.Messages[i].SentAt.Before(c.Messages[i-1].SentAt) {
			t.Fatalf("messages out of order at %d", i)
		}
	}
	// Owner stripped from participants.
	if len(c.Participants) != 1 || c.Participants[0] != "Alice Wonder" {
		t.Fatalf("unexpected participants: %v", c.Participants)
	}
}

func TestBuildArchive_KeepsGroupsWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = buildTestArchive(t)
	cfg.ExcludeGroupChats = false
	a := New(cfg)

	archive, err := a.BuildArchive(context.Background(), "John Doe")
	if err != nil {
		t.Fatal(err)
	}
	if len(archive.Conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(archive.Conversations))
	}
}

func TestBuildArchive_DiagnosticSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = buildTestArchive(t)
	a := New(cfg)
	var diagnosed bool
	a.Diagnostic = func(cleaned string) { diagnosed = true }

	if _, err := a.BuildArchive(context.Background(), "John Doe"); err != nil {
		t.Fatal(err)
	}
	if !diagnosed {
		t.Fatal("malformed thread file did not reach the diagnostic sink")
	}
}

func TestBuildArchive_UnknownLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = t.TempDir()
	if _, err := New(cfg).BuildArchive(context.Background(), "X"); err != ErrUnknownLayout {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestResolveOwnerName_Precedence(t *testing.T) {
	root := buildTestArchive(t)

	cfg := DefaultConfig()
	cfg.RootPath = root
	cfg.OwnerName = "Explicit Name"
	owner, err := New(cfg).ResolveOwnerName()
	if err != nil || owner != "Explicit Name" {
		t.Fatalf("explicit name must win: %q, %v", owner, err)
	}

	// Without profile document and config, the prompt is the fallback.
	cfg = DefaultConfig()
	cfg.RootPath = t.TempDir()
	a := New(cfg)
	a.PromptOwnerName = func() string { return "Typed Name" }
	owner, err = a.ResolveOwnerName()
	if err != nil || owner != "Typed Name" {
		t.Fatalf("prompt fallback failed: %q, %v", owner, err)
	}

	a.PromptOwnerName = nil
	if _, err := a.ResolveOwnerName(); err != ErrNoOwnerName {
		t.Fatalf("expected ErrNoOwnerName, got %v", err)
	}
}

func TestStats_EndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = buildTestArchive(t)
	cfg.ExhaustiveLists = true
	a := New(cfg)

	archive, err := a.BuildArchive(context.Background(), "John Doe")
	if err != nil {
		t.Fatal(err)
	}
	r := a.Stats(archive.OwnerName, archive.Conversations)
	if r.General.TotalMessages != 3 || r.General.MyMessages != 1 {
		t.Fatalf("unexpected general stats: %+v", r.General)
	}
	sum := 0
	for _, n := range r.Hourly {
		sum += n
	}
	if sum != r.General.TotalMessages {
		t.Fatalf("hourly histogram total %d != %d messages", sum, r.General.TotalMessages)
	}
	if len(r.TopByMessages.Entries) == 0 {
		t.Fatal("expected at least one ranked conversation")
	}
}

func TestStats_SingleConversationFallsUnderMeanCutoff(t *testing.T) {
	// With one conversation the mean equals its own count, and the
	// strictly-above-mean cutoff leaves the truncated list empty.
	cfg := DefaultConfig()
	cfg.RootPath = buildTestArchive(t)
	a := New(cfg)

	archive, err := a.BuildArchive(context.Background(), "John Doe")
	if err != nil {
		t.Fatal(err)
	}
	r := a.Stats(archive.OwnerName, archive.Conversations)
	if len(r.TopByMessages.Entries) != 0 {
		t.Fatalf("expected empty ranking, got %d entries", len(r.TopByMessages.Entries))
	}
	if !r.TopByMessages.More {
		t.Fatal("truncated ranking must report more entries exist")
	}
}
