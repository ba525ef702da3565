// Package metrics derives read-only summaries from snapshots of users,
// projects, and tasks. Every function is pure: no I/O, no mutation of its
// inputs, deterministic for a fixed reference instant. Callers pass the
// current instant explicitly so tests can pin a fixed clock.
package metrics

import (
	"fmt"
	"time"
)

// Level is a coarse recency bucket.
type Level string

const (
	LevelActive      Level = "active"
	LevelRecent      Level = "recent"
	LevelLowActivity Level = "low_activity"
	LevelInactive    Level = "inactive"
)

// Policy maps elapsed whole days to a recency bucket.
//
// Two policies are in use and they intentionally disagree: the product
// applies different thresholds to "when was this person last seen" and
// "when was this task last touched". Call sites pick one explicitly rather
// than the package guessing which reading of recency is wanted.
type Policy func(elapsedDays int) Level

// LastActivePolicy buckets user presence: same day is active, up to three
// days is recent, anything older is inactive.
func LastActivePolicy(elapsedDays int) Level {
	switch {
	case elapsedDays == 0:
		return LevelActive
	case elapsedDays <= 3:
		return LevelRecent
	default:
		return LevelInactive
	}
}

// TaskUpdatePolicy buckets task update recency: up to three days is active,
// four to six days is low activity, a week or more is inactive.
func TaskUpdatePolicy(elapsedDays int) Level {
	switch {
	case elapsedDays <= 3:
		return LevelActive
	case elapsedDays <= 6:
		return LevelLowActivity
	default:
		return LevelInactive
	}
}

// Activity is a classified recency with the raw elapsed-day count retained
// for display.
type Activity struct {
	Level       Level `json:"level"`
	ElapsedDays int   `json:"elapsed_days"`
}

// ElapsedDays returns the number of whole days between lastEvent and now.
// A lastEvent in the future counts as zero days, never negative.
func ElapsedDays(lastEvent, now time.Time) int {
	if now.Before(lastEvent) {
		return 0
	}
	return int(now.Sub(lastEvent) / (24 * time.Hour))
}

// Classify buckets the time elapsed since lastEvent under the given policy.
// It is defined for any pair of instants, future lastEvent included.
func Classify(lastEvent, now time.Time, policy Policy) Activity {
	days := ElapsedDays(lastEvent, now)
	return Activity{Level: policy(days), ElapsedDays: days}
}

// Label renders the elapsed-day count for display.
func (a Activity) Label() string {
	if a.ElapsedDays == 0 {
		return "Today"
	}
	return fmt.Sprintf("%d days ago", a.ElapsedDays)
}
