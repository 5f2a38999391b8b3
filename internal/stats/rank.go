package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// RankEntry is one conversation in a ranking. Sent/Received split the
// metric by side; PctOfAll is filled only for the message ranking.
type RankEntry struct {
	Name     string
	Total    int
	Sent     int
	Received int
	PctOfAll float64
}

// Ranking is a descending conversation ranking. More is set when the
// list was cut off at the mean threshold ("and more" indicator).
type Ranking struct {
	Entries []RankEntry
	More    bool
}

// ConcentrationStep is one point of the concentration curve: Percent of
// all messages is covered by this many People (conversation partners)
// having exchanged Messages messages cumulatively.
type ConcentrationStep struct {
	Percent  float64
	People   int
	Messages int
}

// ConcentrationCurve is ordered by Percent ascending, the order in which
// the thresholds are reached during the single accumulation pass.
type ConcentrationCurve []ConcentrationStep

// MessageRanking is the message-count ranking together with its
// concentration curve.
type MessageRanking struct {
	Ranking
	Curve ConcentrationCurve
}

// rankAgg aggregates one participant set. Conversations are keyed by
// participant-set identity rather than title, so a renamed thread never
// produces two entries; the first-seen title is the one reported.
type rankAgg struct {
	name     string
	sent     int
	received int
}

func aggregate(ownerName string, conversations []model.Conversation, byChars bool) (entries []RankEntry, totalMessages int) {
	byKey := map[string]*rankAgg{}
	var order []string

	for _, c := range conversations {
		totalMessages += len(c.Messages)
		key := strings.Join(c.Participants, "\x1f")
		agg, ok := byKey[key]
		if !ok {
			agg = &rankAgg{name: c.Title}
			byKey[key] = agg
			order = append(order, key)
		}
		for _, m := range c.Messages {
			n := 1
			if byChars {
				n = m.Chars()
			}
			if m.Sender == ownerName {
				agg.sent += n
			} else {
				agg.received += n
			}
		}
	}

	entries = make([]RankEntry, 0, len(order))
	for _, key := range order {
		agg := byKey[key]
		entries = append(entries, RankEntry{
			Name:     agg.name,
			Total:    agg.sent + agg.received,
			Sent:     agg.sent,
			Received: agg.received,
		})
	}

	// The ranking contract everywhere: ascending by (metric, label),
	// then reversed. This pins tie ordering among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total < entries[j].Total
		}
		return entries[i].Name < entries[j].Name
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, totalMessages
}

// TopByCharacters ranks conversations by characters exchanged,
// descending. Without exhaustive, entries are kept only above the mean
// message count per ranked conversation.
func TopByCharacters(ownerName string, conversations []model.Conversation, exhaustive bool) Ranking {
	entries, totalMessages := aggregate(ownerName, conversations, true)
	threshold := SafeDiv(float64(totalMessages), float64(len(entries)))

	out := Ranking{More: !exhaustive}
	for _, e := range entries {
		if e.Total == 0 {
			continue
		}
		if exhaustive || float64(e.Total) > threshold {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// TopByMessages ranks conversations by messages exchanged, descending,
// and attaches the concentration curve over the same ranking.
func TopByMessages(ownerName string, conversations []model.Conversation, exhaustive bool) MessageRanking {
	entries, totalMessages := aggregate(ownerName, conversations, false)
	threshold := SafeDiv(float64(totalMessages), float64(len(conversations)))

	out := MessageRanking{Ranking: Ranking{More: !exhaustive}}
	for _, e := range entries {
		if e.Total == 0 {
			continue
		}
		if exhaustive || float64(e.Total) > threshold {
			e.PctOfAll = SafeDiv(float64(e.Total), float64(totalMessages)) * 100
			out.Entries = append(out.Entries, e)
		}
	}
	out.Curve = concentration(entries, totalMessages)
	return out
}

// Concentration computes the concentration curve in isolation: how many
// people account for decreasing shares of all messages.
func Concentration(ownerName string, conversations []model.Conversation) ConcentrationCurve {
	entries, totalMessages := aggregate(ownerName, conversations, false)
	return concentration(entries, totalMessages)
}

// concentration walks the descending ranking once, accumulating
// messages, and emits a step whenever the running total crosses the next
// threshold. Thresholds are ten geometrically spaced divisors of the
// total, from 1.1 to 2.9; a single pass guarantees no conversation is
// counted twice.
func concentration(entries []RankEntry, totalMessages int) ConcentrationCurve {
	divisors := make([]float64, 10)
	for k := range divisors {
		divisors[k] = 1.1 * math.Pow(2.9/1.1, float64(k)/9)
	}

	var curve ConcentrationCurve
	seen, people, idx := 0, 0, 0
	for k := len(divisors) - 1; k >= 0; k-- {
		threshold := SafeDiv(float64(totalMessages), divisors[k])
		for idx < len(entries) && float64(seen) <= threshold {
			if entries[idx].Total != 0 {
				seen += entries[idx].Total
				people++
			}
			idx++
		}
		if float64(seen) > threshold && seen > 0 {
			curve = append(curve, ConcentrationStep{
				Percent:  100 / divisors[k],
				People:   people,
				Messages: seen,
			})
		}
	}
	return curve
}
