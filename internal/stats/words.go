package stats

import (
	"sort"
	"strings"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// wordListLimit caps ranked word lists when exhaustive mode is off.
const wordListLimit = 100

// WordCount is one word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// WordStats holds per-side word frequency tables, descending by count.
type WordStats struct {
	MyDistinct    int
	TheirDistinct int
	MyTop         []WordCount
	TheirTop      []WordCount
	Truncated     bool
}

// MostUsedWords tokenizes every message body by dropping commas and
// splitting on whitespace, and builds separate frequency tables for the
// owner and everyone else. Messages with an absent body contribute no
// tokens. Lists are cut at 100 entries unless exhaustive.
func MostUsedWords(ownerName string, conversations []model.Conversation, exhaustive bool) WordStats {
	myWords := map[string]int{}
	theirWords := map[string]int{}

	for _, c := range conversations {
		for _, m := range c.Messages {
			if m.Text == nil {
				continue
			}
			table := theirWords
			if m.Sender == ownerName {
				table = myWords
			}
			for _, w := range strings.Fields(strings.ReplaceAll(*m.Text, ",", "")) {
				table[w]++
			}
		}
	}

	s := WordStats{
		MyDistinct:    len(myWords),
		TheirDistinct: len(theirWords),
	}
	s.MyTop, s.Truncated = topWords(myWords, exhaustive)
	theirTop, trunc := topWords(theirWords, exhaustive)
	s.TheirTop = theirTop
	s.Truncated = s.Truncated || trunc
	return s
}

// topWords sorts ascending by (count, word) and reverses, the shared
// ranking contract, then applies the list limit.
func topWords(table map[string]int, exhaustive bool) ([]WordCount, bool) {
	out := make([]WordCount, 0, len(table))
	for w, n := range table {
		out = append(out, WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if !exhaustive && len(out) > wordListLimit {
		return out[:wordListLimit], true
	}
	return out, false
}
