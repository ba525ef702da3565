package metrics

import (
	"math"
	"time"
)

// CompletionRate returns completed/total as a percentage rounded to one
// decimal place. A zero total is defined as a zero rate, not an error.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(completed) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// OverdueCount counts records whose due instant is strictly before now and
// which are not yet done. A record due exactly at now is not overdue, and
// done records are never overdue regardless of their due date.
func OverdueCount[T any](records []T, now time.Time, due func(T) time.Time, done func(T) bool) int {
	count := 0
	for _, rec := range records {
		if done(rec) {
			continue
		}
		if due(rec).Before(now) {
			count++
		}
	}
	return count
}

// EnumCount is one bucket of a fixed-order distribution.
type EnumCount[E comparable] struct {
	Value E   `json:"value"`
	Count int `json:"count"`
}

// GroupCountsByEnum tallies records into the declared enum values. The
// result has exactly one entry per declared value, in declared order, with
// zero counts included. Views render legends and bars in this order, so it
// is never resorted by frequency. Records carrying a value outside the
// declared set are silently dropped.
func GroupCountsByEnum[T any, E comparable](records []T, selector func(T) E, values []E) []EnumCount[E] {
	index := make(map[E]int, len(values))
	counts := make([]EnumCount[E], len(values))
	for i, v := range values {
		index[v] = i
		counts[i] = EnumCount[E]{Value: v}
	}
	for _, rec := range records {
		if i, ok := index[selector(rec)]; ok {
			counts[i].Count++
		}
	}
	return counts
}
