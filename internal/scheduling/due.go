package scheduling

import (
	"sort"
	"time"
)

// Item pairs a sentence identifier with its scheduling state for due-set
// selection.
type Item struct {
	ID    int64
	State State
}

// SelectDue returns the IDs of the items due at now, most overdue first.
// Items with the same next review time are ordered by ascending ID so that
// repeated calls with the same inputs yield the same sequence. The input
// slice is not modified; no due items yields an empty result, never an
// error.
func SelectDue(items []Item, now time.Time) []int64 {
	var due []Item
	for _, item := range items {
		if item.State.Due(now) {
			due = append(due, item)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].State.NextReview.Equal(due[j].State.NextReview) {
			return due[i].State.NextReview.Before(due[j].State.NextReview)
		}
		return due[i].ID < due[j].ID
	})

	ids := make([]int64, len(due))
	for i, item := range due {
		ids[i] = item.ID
	}
	return ids
}
