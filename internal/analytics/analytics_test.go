package analytics

import (
	"testing"
	"time"

	"github.com/notenest/notenest/internal/store"
)

var now = time.Date(2025, time.November, 21, 15, 30, 0, 0, time.UTC)

func note(id, categoryID string, createdAt time.Time) store.Note {
	return store.Note{ID: id, Content: "n-" + id, CategoryID: categoryID, CreatedAt: createdAt}
}

func TestDistributionExcludesZeroCounts(t *testing.T) {
	categories := []store.Category{
		{ID: "c1", Name: "Work"},
		{ID: "c2", Name: "Personal"},
		{ID: "c3", Name: "Ideas"},
	}
	notes := []store.Note{
		note("1", "c1", now),
		note("2", "c1", now),
		note("3", "c3", now),
	}

	got := Distribution(notes, categories)
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2 (zero counts excluded)", len(got))
	}
	if got[0].Category.ID != "c1" || got[0].Count != 2 {
		t.Errorf("entry[0] = %+v, want c1 count 2", got[0])
	}
	if got[1].Category.ID != "c3" || got[1].Count != 1 {
		t.Errorf("entry[1] = %+v, want c3 count 1", got[1])
	}

	sum := 0
	for _, e := range got {
		sum += e.Count
	}
	if sum != len(notes) {
		t.Errorf("counts sum to %d, want %d", sum, len(notes))
	}
}

func TestDistributionEmpty(t *testing.T) {
	if got := Distribution(nil, nil); len(got) != 0 {
		t.Errorf("expected empty distribution, got %+v", got)
	}
}

func TestActivityLast7DaysAlwaysSevenBuckets(t *testing.T) {
	got := ActivityLast7Days(nil, now)
	if len(got) != 7 {
		t.Fatalf("buckets = %d, want 7", len(got))
	}
	for _, b := range got {
		if b.Count != 0 {
			t.Errorf("bucket %s count = %d, want 0", b.Label, b.Count)
		}
	}

	// Oldest first: last bucket is today.
	if !got[6].Date.Equal(now) {
		t.Errorf("last bucket date = %v, want %v", got[6].Date, now)
	}
	if got[6].Label != "Fri" {
		t.Errorf("last bucket label = %s, want Fri", got[6].Label)
	}
	if got[0].Label != "Sat" {
		t.Errorf("first bucket label = %s, want Sat", got[0].Label)
	}
}

func TestActivityBucketsByCalendarDay(t *testing.T) {
	notes := []store.Note{
		// Same calendar day as now, different clock times.
		note("1", "c1", now.Add(-14*time.Hour)),
		note("2", "c1", now.Add(2*time.Hour)),
		// Yesterday, but within 24h of now.
		note("3", "c1", now.Add(-20*time.Hour)),
		// Six days ago: the oldest bucket.
		note("4", "c1", now.AddDate(0, 0, -6)),
		// Eight days ago: outside the window entirely.
		note("5", "c1", now.AddDate(0, 0, -8)),
	}

	got := ActivityLast7Days(notes, now)
	if got[6].Count != 2 {
		t.Errorf("today = %d, want 2", got[6].Count)
	}
	if got[5].Count != 1 {
		t.Errorf("yesterday = %d, want 1", got[5].Count)
	}
	if got[0].Count != 1 {
		t.Errorf("oldest bucket = %d, want 1", got[0].Count)
	}

	total := 0
	for _, b := range got {
		total += b.Count
	}
	if total != 4 {
		t.Errorf("bucketed notes = %d, want 4 (one falls outside)", total)
	}
}

func TestTotals(t *testing.T) {
	categories := []store.Category{{ID: "c1"}, {ID: "c2"}}
	notes := []store.Note{
		note("1", "c1", now),
		note("2", "c1", now.AddDate(0, 0, -1)),
		note("3", "c2", now.Add(-time.Hour)),
	}

	got := Totals(notes, categories, now)
	if got.TotalNotes != 3 || got.TotalCategories != 2 || got.NotesToday != 2 {
		t.Errorf("totals = %+v, want {3 2 2}", got)
	}
}

func TestTotalsEmpty(t *testing.T) {
	got := Totals(nil, nil, now)
	if got.TotalNotes != 0 || got.TotalCategories != 0 || got.NotesToday != 0 {
		t.Errorf("totals = %+v, want zeroes", got)
	}
}
