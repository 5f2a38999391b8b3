// Package store collects extracted conversations, merges paginated
// fragments of the same thread, and hands out read-only filtered views.
package store

import (
	"github.com/rs/zerolog/log"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// Store is an ordered collection of conversations keyed by the thread
// that produced them. Identity is the originating thread directory, not
// conversation content, so renamed threads never collide and paginated
// fragments always merge.
type Store struct {
	order []string
	byID  map[string]*model.Conversation
}

func New() *Store {
	return &Store{byID: map[string]*model.Conversation{}}
}

// AddOrMerge appends a conversation, or when the thread has already
// contributed a fragment, concatenates the new fragment's messages onto
// it. The first fragment's title and participants win; callers supply
// fragments oldest-first, which keeps the merged sequence chronological.
func (s *Store) AddOrMerge(threadID string, conv *model.Conversation) {
	if conv == nil {
		return
	}
	if existing, ok := s.byID[threadID]; ok {
		existing.Messages = append(existing.Messages, conv.Messages...)
		return
	}
	c := *conv
	s.byID[threadID] = &c
	s.order = append(s.order, threadID)
}

// Len reports the number of stored threads.
func (s *Store) Len() int {
	return len(s.order)
}

// Archive normalizes the stored conversations against the owner's name
// and materializes the read-only archive. Normalization deduplicates
// participants preserving source order and removes the owner from the
// list; conversations left with no other participant (threads with
// oneself) or no messages are dropped, with a log line, not stored
// empty.
func (s *Store) Archive(ownerName string) model.Archive {
	conversations := make([]model.Conversation, 0, len(s.order))
	for _, id := range s.order {
		c := *s.byID[id]
		c.Participants = normalizeParticipants(c.Participants, ownerName)
		if len(c.Participants) == 0 {
			log.Debug().Str("thread", id).Msg("dropping conversation with no other participants")
			continue
		}
		if len(c.Messages) == 0 {
			log.Debug().Str("thread", id).Msg("dropping conversation with no messages")
			continue
		}
		c.Messages = append([]model.Message(nil), c.Messages...)
		conversations = append(conversations, c)
	}
	return model.Archive{OwnerName: ownerName, Conversations: conversations}
}

func normalizeParticipants(in []string, ownerName string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p == ownerName || p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Filtered returns a new archive holding only the conversations the
// predicate accepts. The underlying archive is never mutated.
func Filtered(a model.Archive, pred func(model.Conversation) bool) model.Archive {
	out := model.Archive{OwnerName: a.OwnerName}
	for _, c := range a.Conversations {
		if pred(c) {
			out.Conversations = append(out.Conversations, c)
		}
	}
	return out
}

// WithoutGroupChats filters the archive down to one-on-one threads.
func WithoutGroupChats(a model.Archive) model.Archive {
	return Filtered(a, func(c model.Conversation) bool { return !c.IsGroup() })
}

// MinMessages filters the archive down to threads with at least n
// messages.
func MinMessages(a model.Archive, n int) model.Archive {
	return Filtered(a, func(c model.Conversation) bool { return len(c.Messages) >= n })
}
