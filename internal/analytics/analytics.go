// Package analytics derives read-only projections from store snapshots:
// category distribution, a 7-day activity histogram, and headline totals.
// Pure functions; callers pass the snapshot and the reference time.
package analytics

import (
	"time"

	"github.com/notenest/notenest/internal/store"
)

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Category store.Category `json:"category"`
	Count    int            `json:"count"`
}

// DayCount is one bucket of the activity histogram.
type DayCount struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Summary holds the headline totals.
type Summary struct {
	TotalNotes      int `json:"totalNotes"`
	TotalCategories int `json:"totalCategories"`
	NotesToday      int `json:"notesToday"`
}

// Distribution counts notes per category, in category display order.
// Categories without notes are excluded rather than zero-filled.
func Distribution(notes []store.Note, categories []store.Category) []CategoryCount {
	counts := make(map[string]int, len(categories))
	for _, n := range notes {
		counts[n.CategoryID]++
	}

	var out []CategoryCount
	for _, c := range categories {
		if count := counts[c.ID]; count > 0 {
			out = append(out, CategoryCount{Category: c, Count: count})
		}
	}
	return out
}

// ActivityLast7Days buckets notes by calendar day over now's day and the
// six preceding days, oldest first. Bucket membership is calendar-day
// equality, not a rolling 24h window. Always returns exactly 7 buckets.
func ActivityLast7Days(notes []store.Note, now time.Time) []DayCount {
	out := make([]DayCount, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		out[i] = DayCount{
			Label: day.Weekday().String()[:3],
			Date:  day,
		}
		for _, n := range notes {
			if sameDay(n.CreatedAt, day) {
				out[i].Count++
			}
		}
	}
	return out
}

// Totals computes the headline numbers for a snapshot.
func Totals(notes []store.Note, categories []store.Category, now time.Time) Summary {
	s := Summary{
		TotalNotes:      len(notes),
		TotalCategories: len(categories),
	}
	for _, n := range notes {
		if sameDay(n.CreatedAt, now) {
			s.NotesToday++
		}
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
