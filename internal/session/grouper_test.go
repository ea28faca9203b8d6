package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGroupByDateWindows(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	entryAt := func(id string, age time.Duration) HistoryEntry {
		return HistoryEntry{ID: id, Title: id, Timestamp: now.Add(-age).UnixMilli()}
	}

	e0 := entryAt("e0", 0)
	e1 := entryAt("e1", 12*time.Hour)
	e2 := entryAt("e2", 30*time.Hour)
	e3 := entryAt("e3", 5*24*time.Hour)
	e4 := entryAt("e4", 10*24*time.Hour) // dropped entirely

	got := GroupByDate([]HistoryEntry{e0, e1, e2, e3, e4}, now)
	want := []Group{
		{Label: "Today", Entries: []HistoryEntry{e0, e1}},
		{Label: "Yesterday", Entries: []HistoryEntry{e2}},
		{Label: "Last 7 Days", Entries: []HistoryEntry{e3}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByDate mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByDateBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	exactly := func(id string, age time.Duration) HistoryEntry {
		return HistoryEntry{ID: id, Timestamp: now.Add(-age).UnixMilli()}
	}

	// 24h lands in Yesterday, 48h in Last 7 Days, 7d is dropped.
	got := GroupByDate([]HistoryEntry{
		exactly("day", 24*time.Hour),
		exactly("twoDays", 48*time.Hour),
		exactly("week", 7*24*time.Hour),
	}, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Label != "Yesterday" || got[0].Entries[0].ID != "day" {
		t.Errorf("24h-old entry grouped as %q", got[0].Label)
	}
	if got[1].Label != "Last 7 Days" || got[1].Entries[0].ID != "twoDays" {
		t.Errorf("48h-old entry grouped as %q", got[1].Label)
	}
}

func TestGroupByDateOmitsEmptyGroups(t *testing.T) {
	now := time.Now()
	entries := []HistoryEntry{
		{ID: "a", Timestamp: now.Add(-3 * 24 * time.Hour).UnixMilli()},
	}

	got := GroupByDate(entries, now)
	if len(got) != 1 || got[0].Label != "Last 7 Days" {
		t.Fatalf("got %+v, want single Last 7 Days group", got)
	}
}

func TestGroupByDateEmptyInput(t *testing.T) {
	got := GroupByDate(nil, time.Now())
	if len(got) != 0 {
		t.Fatalf("expected empty sequence, got %+v", got)
	}
}

func TestGroupByDatePreservesOrder(t *testing.T) {
	now := time.Now()
	// Archive-list order: most recently archived first.
	entries := []HistoryEntry{
		{ID: "newest", Timestamp: now.Add(-1 * time.Hour).UnixMilli()},
		{ID: "older", Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
		{ID: "oldest", Timestamp: now.Add(-3 * time.Hour).UnixMilli()},
	}

	got := GroupByDate(entries, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d", len(got))
	}
	for i, want := range []string{"newest", "older", "oldest"} {
		if got[0].Entries[i].ID != want {
			t.Errorf("entry %d = %s, want %s", i, got[0].Entries[i].ID, want)
		}
	}
}
