package session

import "time"

const day = 24 * time.Hour

// Grouping window labels, in display order.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
	LabelLast7Days = "Last 7 Days"
)

// GroupByDate buckets history entries into relative time windows for
// display. Entries older than seven days are dropped from the output (not
// from storage); empty groups are omitted; within a group the input order
// is preserved. Pure function of the entries and the given current time.
func GroupByDate(entries []HistoryEntry, now time.Time) []Group {
	nowMs := now.UnixMilli()

	var today, yesterday, lastSeven []HistoryEntry
	for _, e := range entries {
		diff := time.Duration(nowMs-e.Timestamp) * time.Millisecond
		switch {
		case diff < day:
			today = append(today, e)
		case diff < 2*day:
			yesterday = append(yesterday, e)
		case diff < 7*day:
			lastSeven = append(lastSeven, e)
		}
	}

	groups := []Group{}
	for _, g := range []Group{
		{Label: LabelToday, Entries: today},
		{Label: LabelYesterday, Entries: yesterday},
		{Label: LabelLast7Days, Entries: lastSeven},
	} {
		if len(g.Entries) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
