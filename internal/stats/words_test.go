package stats

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

func TestMostUsedWords_SplitsSidesAndStripsCommas(t *testing.T) {
	convs := []model.Conversation{{
		Title:        "Bob",
		Participants: []string{"Bob"},
		Messages: []model.Message{
			msg("Bob", "hello, hello world", t0),
			msg("Alice", "ok ok ok", t0.Add(time.Second)),
			{Sender: "Bob", SentAt: t0.Add(2 * time.Second)}, // attachment, no tokens
		},
	}}
	w := MostUsedWords("Alice", convs, false)
	if w.TheirDistinct != 2 || w.MyDistinct != 1 {
		t.Fatalf("unexpected distinct counts: %+v", w)
	}
	if w.TheirTop[0].Word != "hello" || w.TheirTop[0].Count != 2 {
		t.Fatalf("comma not stripped before counting: %+v", w.TheirTop)
	}
	if w.MyTop[0].Word != "ok" || w.MyTop[0].Count != 3 {
		t.Fatalf("unexpected owner words: %+v", w.MyTop)
	}
}

func TestMostUsedWords_TieOrder(t *testing.T) {
	convs := []model.Conversation{{
		Title:        "Bob",
		Participants: []string{"Bob"},
		Messages:     []model.Message{msg("Bob", "apple zebra mango", t0)},
	}}
	w := MostUsedWords("Me", convs, false)
	// Equal counts: ascending (count, word) reversed puts the last
	// alphabetical word first.
	want := []string{"zebra", "mango", "apple"}
	for i, wc := range w.TheirTop {
		if wc.Word != want[i] {
			t.Fatalf("unexpected tie order: %+v", w.TheirTop)
		}
	}
}

func TestMostUsedWords_Truncation(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&sb, "word%03d ", i)
	}
	convs := []model.Conversation{{
		Title:        "Bob",
		Participants: []string{"Bob"},
		Messages:     []model.Message{msg("Bob", sb.String(), t0)},
	}}

	w := MostUsedWords("Me", convs, false)
	if len(w.TheirTop) != 100 || !w.Truncated {
		t.Fatalf("expected truncation at 100, got %d (truncated=%v)", len(w.TheirTop), w.Truncated)
	}
	if w.TheirDistinct != 150 {
		t.Fatalf("distinct count must ignore truncation: %d", w.TheirDistinct)
	}

	all := MostUsedWords("Me", convs, true)
	if len(all.TheirTop) != 150 || all.Truncated {
		t.Fatalf("exhaustive mode truncated: %d", len(all.TheirTop))
	}
}
