package domain

import (
	"math"
	"time"
)

// Progress is the display-ready readiness summary for one event.
type Progress struct {
	TaskProgress  float64 `json:"taskProgress"`
	GuestProgress float64 `json:"guestProgress"`
	Overall       int     `json:"overall"`
	DaysLeft      int     `json:"daysLeft"`
}

// TaskProgress returns the completed share of tasks as a percentage.
// An empty list contributes zero rather than failing.
func TaskProgress(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

// GuestProgress returns confirmed guests as a percentage of the expected
// count. The figure is deliberately not capped: more confirmations than
// expected legitimately exceeds 100 and the caller decides whether to
// clamp for display.
func GuestProgress(stats RSVPStatistics, expectedGuests int) float64 {
	if expectedGuests <= 0 {
		return 0
	}
	return float64(stats.Yes) / float64(expectedGuests) * 100
}

// OverallProgress is the unweighted mean of task and guest progress,
// rounded to the nearest integer. Equal weighting between preparation
// and guests secured is intentional, regardless of how many tasks or
// guests exist.
func OverallProgress(taskProgress, guestProgress float64) int {
	return int(math.Round((taskProgress + guestProgress) / 2))
}

// DaysLeft counts calendar days from now until the event date, both
// taken at local midnight. It is 0 on the event day and negative once
// the event has passed; a negative value is a signal, not an error.
func DaysLeft(eventDate, now time.Time) int {
	eventMidnight := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, eventDate.Location())
	nowMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(eventMidnight.Sub(nowMidnight).Hours() / 24))
}

// AggregateProgress combines the individual figures for one event. Task
// and statistics fetch failures are the caller's concern: pass an empty
// list and zero statistics so aggregation degrades instead of erroring.
func AggregateProgress(ev Event, tasks []Task, stats RSVPStatistics, now time.Time) Progress {
	tp := TaskProgress(tasks)
	gp := GuestProgress(stats, ev.ExpectedGuests)
	return Progress{
		TaskProgress:  tp,
		GuestProgress: gp,
		Overall:       OverallProgress(tp, gp),
		DaysLeft:      DaysLeft(ev.Date, now),
	}
}
