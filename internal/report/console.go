// Package report renders computed statistics for people. The stats core
// only ever produces plain result records; everything string-shaped
// lives here.
package report

import (
	"fmt"
	"io"

	"github.com/dobrakmato/messenger-stats/internal/app"
)

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Separator prints the section divider used between statistics blocks.
func Separator(w io.Writer) {
	fmt.Fprintln(w, "------------------------------------------------------------")
}

// Banner frames a per-conversation section with the thread's title.
func Banner(w io.Writer, title string) {
	fmt.Fprintln(w, "+============================================================+")
	fmt.Fprintf(w, "|%s|\n", centered(title, 60))
	fmt.Fprintln(w, "|============================================================|")
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return fmt.Sprintf("%*s%-*s", left+len(s), s, width-left-len(s), "")
}

// Console writes the full statistics battery as text.
func Console(w io.Writer, r app.Results) {
	Separator(w)
	general(w, r)
	Separator(w)
	topByChars(w, r)
	Separator(w)
	topByMessages(w, r)
	Separator(w)
	concentration(w, r)
	Separator(w)
	hourly(w, r)
	Separator(w)
	yearly(w, r)
	Separator(w)
	weekday(w, r)
	Separator(w)
	lengths(w, r)
	Separator(w)
	messagesBeforeReply(w, r)
	Separator(w)
	timeBeforeReply(w, r)
	Separator(w)
	starts(w, r)
	Separator(w)
	words(w, r)
}

func general(w io.Writer, r app.Results) {
	g := r.General
	fmt.Fprintf(w, "You have exchanged %d messages total.\n", g.TotalMessages)
	fmt.Fprintf(w, "You have sent %d (%.2f%%) messages and received %d (%.2f%%) total.\n",
		g.MyMessages, g.MyMessagePct, g.TheirMessages, g.TheirMessagePct)
	fmt.Fprintf(w, "You have exchanged %d characters in messages total. (%.2f%% were sent by you)\n",
		g.TotalCharacters, g.MyCharacterPct)
	fmt.Fprintf(w, "You are in %d conversations.\n", g.Conversations)
	fmt.Fprintf(w, "You talked to %d different people.\n", g.DistinctPeople)
}

func topByChars(w io.Writer, r app.Results) {
	fmt.Fprintln(w, "Conversations by characters exchanged:")
	for _, e := range r.TopByCharacters.Entries {
		fmt.Fprintf(w, "%s\t%d (%d sent, %d received)\n", e.Name, e.Total, e.Sent, e.Received)
	}
	if r.TopByCharacters.More {
		fmt.Fprintln(w, "And more...")
	}
}

func topByMessages(w io.Writer, r app.Results) {
	fmt.Fprintln(w, "Conversations by messages exchanged:")
	for _, e := range r.TopByMessages.Entries {
		fmt.Fprintf(w, "%s\t%d (%.2f%% of all msgs) (%d sent, %d received)\n",
			e.Name, e.Total, e.PctOfAll, e.Sent, e.Received)
	}
	if r.TopByMessages.More {
		fmt.Fprintln(w, "And more...")
	}
}

func concentration(w io.Writer, r app.Results) {
	// Most-concentrated share last, mirroring the historical output
	// order of decreasing thresholds.
	for i := len(r.Concentration) - 1; i >= 0; i-- {
		s := r.Concentration[i]
		fmt.Fprintf(w, "%.0f%% messages were sent by %d people.\n", s.Percent, s.People)
	}
}

func hourly(w io.Writer, r app.Results) {
	fmt.Fprintln(w, "Hourly histogram (You exchange most messages at):")
	for i, n := range r.Hourly {
		fmt.Fprintf(w, "%02d:00 - %02d:00\t%d\n", i, i+1, n)
	}
}

func yearly(w io.Writer, r app.Results) {
	fmt.Fprintln(w, "Yearly histogram (You exchange most messages in the year):")
	for _, y := range r.Yearly.Years {
		fmt.Fprintf(w, "%d\t%d\n", y.Year, y.Count)
	}
	if r.Yearly.OutOfRange > 0 {
		fmt.Fprintf(w, "(%d messages dated outside 2000-2099)\n", r.Yearly.OutOfRange)
	}
}

func weekday(w io.Writer, r app.Results) {
	fmt.Fprintln(w, "Day in week histogram (You exchange most messages at):")
	for i, n := range r.Weekday {
		fmt.Fprintf(w, "%s\t%d\n", weekdayNames[i], n)
	}
}

func lengths(w io.Writer, r app.Results) {
	l := r.Lengths
	fmt.Fprintf(w, "Longest message has %d characters\n", l.OverallMax)
	fmt.Fprintf(w, "  Your longest message has %d characters\n", l.Mine.Max)
	fmt.Fprintf(w, "  Longest message you received has %d characters\n", l.Theirs.Max)
	fmt.Fprintf(w, "Average message length is %.2f characters\n", l.OverallAvg)
	fmt.Fprintf(w, "  Your average is %.2f characters\n", l.Mine.Avg)
	fmt.Fprintf(w, "  Average of messages you received %.2f characters\n", l.Theirs.Avg)
	fmt.Fprintf(w, "Based on %d messages\n", l.Mine.Count+l.Theirs.Count)
}

func messagesBeforeReply(w io.Writer, r app.Results) {
	m := r.MessagesBeforeReply
	fmt.Fprintf(w, "On average other person responded after %.2f your messages.\n", m.MineBeforeReply)
	fmt.Fprintf(w, "On average you responded after %.2f messages from other person.\n", m.TheirsBeforeReply)
}

func timeBeforeReply(w io.Writer, r app.Results) {
	t := r.TimeBeforeReply
	fmt.Fprintf(w, "On average other person responded after %.2f seconds.\n", t.TheirAvgSeconds)
	fmt.Fprintf(w, "On average you responded after %.2f seconds.\n", t.MyAvgSeconds)
}

func starts(w io.Writer, r app.Results) {
	fmt.Fprintf(w, "Other people started conversation with you %d times.\n", r.Starts.TheirStarts)
	fmt.Fprintf(w, "You started conversation %d times.\n", r.Starts.MyStarts)
}

func words(w io.Writer, r app.Results) {
	fmt.Fprintf(w, "There are %d different words in conversation(s).\n", r.Words.TheirDistinct)
	fmt.Fprintf(w, "You used %d different words.\n", r.Words.MyDistinct)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most used words in conversations:")
	for _, wc := range r.Words.TheirTop {
		fmt.Fprintf(w, "%s\t%d\n", wc.Word, wc.Count)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most used words by you:")
	for _, wc := range r.Words.MyTop {
		fmt.Fprintf(w, "%s\t%d\n", wc.Word, wc.Count)
	}
}
