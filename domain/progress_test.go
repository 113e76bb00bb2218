package domain

import (
	"testing"
	"time"
)

func TestTaskProgressEmptyList(t *testing.T) {
	if got := TaskProgress(nil); got != 0 {
		t.Fatalf("expected 0 for empty task list, got %v", got)
	}
}

func TestTaskProgressBounds(t *testing.T) {
	tasks := []Task{}
	for i := 0; i < 7; i++ {
		tasks = append(tasks, Task{Completed: i%2 == 0})
	}
	got := TaskProgress(tasks)
	if got < 0 || got > 100 {
		t.Fatalf("task progress out of bounds: %v", got)
	}
}

func TestTaskProgressAllDone(t *testing.T) {
	tasks := []Task{{Completed: true}, {Completed: true}}
	if got := TaskProgress(tasks); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestGuestProgressZeroExpected(t *testing.T) {
	if got := GuestProgress(RSVPStatistics{Yes: 10, Total: 10}, 0); got != 0 {
		t.Fatalf("expected 0 when no guests expected, got %v", got)
	}
}

func TestGuestProgressNotCapped(t *testing.T) {
	got := GuestProgress(RSVPStatistics{Yes: 15, Total: 15}, 10)
	if got != 150 {
		t.Fatalf("expected uncapped 150, got %v", got)
	}
}

func TestOverallProgressSample(t *testing.T) {
	tasks := make([]Task, 10)
	for i := 0; i < 4; i++ {
		tasks[i].Completed = true
	}
	tp := TaskProgress(tasks)
	if tp != 40 {
		t.Fatalf("expected task progress 40, got %v", tp)
	}
	gp := GuestProgress(RSVPStatistics{Yes: 25, Total: 25}, 50)
	if gp != 50 {
		t.Fatalf("expected guest progress 50, got %v", gp)
	}
	if got := OverallProgress(tp, gp); got != 45 {
		t.Fatalf("expected overall 45, got %d", got)
	}
}

func TestOverallProgressRounds(t *testing.T) {
	if got := OverallProgress(33, 34); got != 34 {
		t.Fatalf("expected 34, got %d", got)
	}
	if got := OverallProgress(0, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	cases := map[string]struct {
		date time.Time
		want int
	}{
		"today":           {time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC), 0},
		"three_days_out":  {time.Date(2025, 6, 13, 1, 0, 0, 0, time.UTC), 3},
		"yesterday":       {time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC), -1},
		"next_month":      {time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), 30},
		"well_after_pass": {time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC), -10},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := DaysLeft(tc.date, now); got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}

func TestAggregateProgressDegradesOnMissingData(t *testing.T) {
	ev := Event{ExpectedGuests: 40, Date: time.Now().AddDate(0, 0, 5)}
	p := AggregateProgress(ev, nil, RSVPStatistics{}, time.Now())
	if p.TaskProgress != 0 || p.GuestProgress != 0 || p.Overall != 0 {
		t.Fatalf("expected zero contributions, got %+v", p)
	}
	if p.DaysLeft != 5 {
		t.Fatalf("expected 5 days left, got %d", p.DaysLeft)
	}
}
