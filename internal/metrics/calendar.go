package metrics

import (
	"time"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
)

// EventKind distinguishes project deadlines from task due dates.
type EventKind string

const (
	KindProject EventKind = "project"
	KindTask    EventKind = "task"
)

// ColorTag is the legend color a calendar event renders with.
type ColorTag string

const (
	ColorBlue   ColorTag = "blue"
	ColorRed    ColorTag = "red"
	ColorOrange ColorTag = "orange"
	ColorYellow ColorTag = "yellow"
	ColorGreen  ColorTag = "green"
)

// CalendarEvent is a deadline rendered on the calendar.
type CalendarEvent struct {
	SourceID string    `json:"source_id"`
	Title    string    `json:"title"`
	Kind     EventKind `json:"kind"`
	Color    ColorTag  `json:"color"`
	Label    string    `json:"label"`
}

// DatedEvent pairs an event with the UTC day it falls on.
type DatedEvent struct {
	Event CalendarEvent `json:"event"`
	Date  time.Time     `json:"date"`
}

// sameUTCDay reports calendar-date equality on the UTC day. Date matching is
// done on the UTC calendar day everywhere; local-time bucketing would make
// event placement depend on the server's zone.
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// taskColor maps task priority to its legend color.
func taskColor(p task.Priority) ColorTag {
	switch p {
	case task.PriorityCritical:
		return ColorRed
	case task.PriorityHigh:
		return ColorOrange
	case task.PriorityMedium:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// EventsOnDate collects the project deadlines and task due dates falling on
// the given UTC calendar day. Project events come first, then task events,
// each group in input order. Project deadlines always render blue; task
// colors follow priority.
func EventsOnDate(projects []project.Project, tasks []task.Task, date time.Time) []CalendarEvent {
	var events []CalendarEvent
	for _, p := range projects {
		if sameUTCDay(p.EndDate, date) {
			events = append(events, CalendarEvent{
				SourceID: p.ID,
				Title:    p.Name + " Due",
				Kind:     KindProject,
				Color:    ColorBlue,
				Label:    "All Day",
			})
		}
	}
	for _, t := range tasks {
		if sameUTCDay(t.DueDate, date) {
			events = append(events, CalendarEvent{
				SourceID: t.ID,
				Title:    t.Title,
				Kind:     KindTask,
				Color:    taskColor(t.Priority),
				Label:    "Due",
			})
		}
	}
	return events
}

// UpcomingEvents scans windowDays consecutive UTC days starting at from
// (inclusive) and returns all events in ascending date order. Events on the
// same day keep the project-then-task sub-order from EventsOnDate. A
// non-positive window yields no events.
func UpcomingEvents(projects []project.Project, tasks []task.Task, from time.Time, windowDays int) []DatedEvent {
	var out []DatedEvent
	start := from.UTC()
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		for _, ev := range EventsOnDate(projects, tasks, day) {
			out = append(out, DatedEvent{Event: ev, Date: startOfUTCDay(day)})
		}
	}
	return out
}

func startOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
