package stats

import (
	"time"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// conversationStartGap is the silence after which the next message
// counts as starting a new conversation instance.
const conversationStartGap = 30 * time.Minute

// MessagesBeforeReplyStats reports, per side, how many consecutive
// messages pile up before the other side responds. A response is a
// side switch in the message stream.
type MessagesBeforeReplyStats struct {
	MyMessages     int
	TheirMessages  int
	MyResponses    int
	TheirResponses int
	// Average count of my messages accumulated before the other side
	// replied, and the mirror value.
	MineBeforeReply   float64
	TheirsBeforeReply float64
}

// MessagesBeforeReply runs side-switch detection over every
// conversation. Tracking state resets per conversation, each seeded as
// if the owner had spoken last; crossConversations restores the older
// behavior of treating the whole set as one continuous stream.
func MessagesBeforeReply(ownerName string, conversations []model.Conversation, crossConversations bool) MessagesBeforeReplyStats {
	var s MessagesBeforeReplyStats
	lastMine := true

	for _, c := range conversations {
		if !crossConversations {
			lastMine = true
		}
		for _, m := range c.Messages {
			if m.Sender == ownerName {
				s.MyMessages++
				if !lastMine {
					s.MyResponses++
				}
				lastMine = true
			} else {
				s.TheirMessages++
				if lastMine {
					s.TheirResponses++
				}
				lastMine = false
			}
		}
	}

	s.MineBeforeReply = SafeDiv(float64(s.MyMessages), float64(s.MyResponses))
	s.TheirsBeforeReply = SafeDiv(float64(s.TheirMessages), float64(s.TheirResponses))
	return s
}

// TimeBeforeReplyStats reports, per side, the wall-clock latency of
// responses: total elapsed seconds between the message that triggered a
// side switch and the response, and the per-response average.
type TimeBeforeReplyStats struct {
	MySeconds       float64
	TheirSeconds    float64
	MyResponses     int
	TheirResponses  int
	MyAvgSeconds    float64
	TheirAvgSeconds float64
}

// TimeBeforeReply accumulates response latency per side. Tracking state
// always resets per conversation; latency across different threads is
// meaningless.
func TimeBeforeReply(ownerName string, conversations []model.Conversation) TimeBeforeReplyStats {
	var s TimeBeforeReplyStats

	for _, c := range conversations {
		const (
			sideNone = iota
			sideMine
			sideTheirs
		)
		last := sideNone
		var lastMine, lastTheirs time.Time

		for _, m := range c.Messages {
			if m.Sender == ownerName {
				if last == sideTheirs {
					s.MyResponses++
					s.MySeconds += absSeconds(m.SentAt.Sub(lastTheirs))
				}
				lastMine = m.SentAt
				last = sideMine
			} else {
				if last == sideMine {
					s.TheirResponses++
					s.TheirSeconds += absSeconds(m.SentAt.Sub(lastMine))
				}
				lastTheirs = m.SentAt
				last = sideTheirs
			}
		}
	}

	s.MyAvgSeconds = SafeDiv(s.MySeconds, float64(s.MyResponses))
	s.TheirAvgSeconds = SafeDiv(s.TheirSeconds, float64(s.TheirResponses))
	return s
}

func absSeconds(d time.Duration) float64 {
	if d < 0 {
		d = -d
	}
	return d.Seconds()
}

// ConversationStarts attributes conversation-instance starts per side. A
// message starts a new instance when it follows the previous one by more
// than 30 minutes; the first message of a thread never counts, there is
// no prior timestamp to compare against.
type ConversationStartsStats struct {
	MyStarts    int
	TheirStarts int
}

func ConversationStarts(ownerName string, conversations []model.Conversation) ConversationStartsStats {
	var s ConversationStartsStats

	for _, c := range conversations {
		var lastAt time.Time
		first := true
		for _, m := range c.Messages {
			if first {
				lastAt = m.SentAt
				first = false
			}
			gap := m.SentAt.Sub(lastAt)
			if gap < 0 {
				gap = -gap
			}
			if gap > conversationStartGap {
				if m.Sender == ownerName {
					s.MyStarts++
				} else {
					s.TheirStarts++
				}
			}
			lastAt = m.SentAt
		}
	}
	return s
}
