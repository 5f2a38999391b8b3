package stats

import (
	"github.com/dobrakmato/messenger-stats/internal/model"
)

// GeneralStats is the headline summary of an archive.
type GeneralStats struct {
	TotalMessages   int
	MyMessages      int
	TheirMessages   int
	MyMessagePct    float64
	TheirMessagePct float64
	TotalCharacters int
	MyCharacters    int
	MyCharacterPct  float64
	Conversations   int
	DistinctPeople  int
}

// General computes message, character, conversation and people totals.
// Messages with an absent body still count toward message totals, only
// not character totals.
func General(ownerName string, conversations []model.Conversation) GeneralStats {
	var g GeneralStats
	unique := map[string]bool{}

	for _, c := range conversations {
		g.TotalMessages += len(c.Messages)
		g.Conversations++
		for _, p := range c.Participants {
			unique[p] = true
		}
		for _, m := range c.Messages {
			g.TotalCharacters += m.Chars()
			if m.Sender == ownerName {
				g.MyMessages++
				g.MyCharacters += m.Chars()
			}
		}
	}

	g.TheirMessages = g.TotalMessages - g.MyMessages
	g.MyMessagePct = SafeDiv(float64(g.MyMessages)*100, float64(g.TotalMessages))
	g.TheirMessagePct = SafeDiv(float64(g.TheirMessages)*100, float64(g.TotalMessages))
	g.MyCharacterPct = SafeDiv(float64(g.MyCharacters)*100, float64(g.TotalCharacters))
	g.DistinctPeople = len(unique)
	return g
}

// HourlyHistogram counts messages per hour of day. All 24 buckets are
// always present.
func HourlyHistogram(conversations []model.Conversation) [24]int {
	var hours [24]int
	for _, c := range conversations {
		for _, m := range c.Messages {
			hours[m.SentAt.Hour()]++
		}
	}
	return hours
}

// YearCount is one non-zero bucket of the yearly histogram.
type YearCount struct {
	Year  int
	Count int
}

// YearlyStats holds the non-zero year buckets in ascending year order.
// Messages dated outside 2000-2099 land in OutOfRange instead of a
// bucket.
type YearlyStats struct {
	Years      []YearCount
	OutOfRange int
}

// YearlyHistogram counts messages per calendar year for 2000 through
// 2099.
func YearlyHistogram(conversations []model.Conversation) YearlyStats {
	var buckets [100]int
	var out YearlyStats
	for _, c := range conversations {
		for _, m := range c.Messages {
			y := m.SentAt.Year()
			if y < 2000 || y > 2099 {
				out.OutOfRange++
				continue
			}
			buckets[y-2000]++
		}
	}
	for i, n := range buckets {
		if n != 0 {
			out.Years = append(out.Years, YearCount{Year: 2000 + i, Count: n})
		}
	}
	return out
}

// WeekdayHistogram counts messages per day of week, Sunday=0 through
// Saturday=6. All 7 buckets are always present.
func WeekdayHistogram(conversations []model.Conversation) [7]int {
	var days [7]int
	for _, c := range conversations {
		for _, m := range c.Messages {
			days[int(m.SentAt.Weekday())]++
		}
	}
	return days
}

// SideLengths holds message-length figures for one side of the
// conversation set.
type SideLengths struct {
	Max   int
	Total int
	Count int
	Avg   float64
}

// LengthStats holds message-length figures for owner and others.
// Messages with an absent body are excluded from both counts and totals.
type LengthStats struct {
	Mine       SideLengths
	Theirs     SideLengths
	OverallMax int
	OverallAvg float64
}

// MessageLengths computes min/max/average body lengths per side.
func MessageLengths(ownerName string, conversations []model.Conversation) LengthStats {
	var s LengthStats
	for _, c := range conversations {
		for _, m := range c.Messages {
			if m.Text == nil {
				continue
			}
			n := m.Chars()
			side := &s.Theirs
			if m.Sender == ownerName {
				side = &s.Mine
			}
			side.Total += n
			side.Count++
			if n > side.Max {
				side.Max = n
			}
		}
	}
	s.Mine.Avg = SafeDiv(float64(s.Mine.Total), float64(s.Mine.Count))
	s.Theirs.Avg = SafeDiv(float64(s.Theirs.Total), float64(s.Theirs.Count))
	s.OverallMax = s.Mine.Max
	if s.Theirs.Max > s.OverallMax {
		s.OverallMax = s.Theirs.Max
	}
	s.OverallAvg = SafeDiv(float64(s.Mine.Total+s.Theirs.Total), float64(s.Mine.Count+s.Theirs.Count))
	return s
}
