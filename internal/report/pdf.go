package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/dobrakmato/messenger-stats/internal/app"
)

// WritePDF renders a one-document summary of the statistics battery.
// This is intentionally simple layout: headings plus label/value lines,
// no charts.
func WritePDF(outPath, ownerName string, r app.Results) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(format string, args ...any) {
		pdf.MultiCell(0, 5, fmt.Sprintf(format, args...), "", "L", false)
	}

	heading("Messenger statistics for " + ownerName)

	g := r.General
	line("Messages exchanged: %d (%d sent, %d received)", g.TotalMessages, g.MyMessages, g.TheirMessages)
	line("Characters exchanged: %d (%.2f%% sent by you)", g.TotalCharacters, g.MyCharacterPct)
	line("Conversations: %d, people: %d", g.Conversations, g.DistinctPeople)
	pdf.Ln(4)

	heading("Top conversations by messages")
	for i, e := range r.TopByMessages.Entries {
		if i >= 20 {
			line("and %d more...", len(r.TopByMessages.Entries)-i)
			break
		}
		line("%s: %d (%.2f%% of all)", e.Name, e.Total, e.PctOfAll)
	}
	pdf.Ln(4)

	heading("Message lengths")
	line("Longest message: %d characters (yours %d, received %d)",
		r.Lengths.OverallMax, r.Lengths.Mine.Max, r.Lengths.Theirs.Max)
	line("Average length: %.2f (yours %.2f, received %.2f)",
		r.Lengths.OverallAvg, r.Lengths.Mine.Avg, r.Lengths.Theirs.Avg)
	pdf.Ln(4)

	heading("Response behavior")
	line("You responded after %.2f messages / %.2f seconds on average.",
		r.MessagesBeforeReply.TheirsBeforeReply, r.TimeBeforeReply.MyAvgSeconds)
	line("Others responded after %.2f messages / %.2f seconds on average.",
		r.MessagesBeforeReply.MineBeforeReply, r.TimeBeforeReply.TheirAvgSeconds)
	line("You started %d conversations, others %d.",
		r.Starts.MyStarts, r.Starts.TheirStarts)
	pdf.Ln(4)

	heading("Busiest years")
	for _, y := range r.Yearly.Years {
		line("%d: %d messages", y.Year, y.Count)
	}

	return pdf.OutputFileAndClose(outPath)
}
