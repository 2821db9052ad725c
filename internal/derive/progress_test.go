package derive

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/goaltrack/internal/model"
)

func tasksWith(completed, total int) []model.Task {
	out := make([]model.Task, 0, total)
	for i := 0; i < total; i++ {
		out = append(out, model.Task{ID: string(rune('a' + i)), Text: "task", Completed: i < completed})
	}
	return out
}

func TestDailyProgress(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{2, 4, 50},
		{4, 4, 100},
	}
	for _, tc := range cases {
		got := DailyProgress(tasksWith(tc.completed, tc.total))
		if got != tc.want {
			t.Fatalf("DailyProgress(%d/%d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Fatalf("progress out of range: %d", got)
		}
		if GoalProgress(tasksWith(tc.completed, tc.total)) != got {
			t.Fatalf("goal progress diverged from daily progress for %d/%d", tc.completed, tc.total)
		}
	}
}

func TestApplyGoalProgressPolicies(t *testing.T) {
	goals := model.SeedGoals()
	tasks := tasksWith(1, 4)

	uniform := ApplyGoalProgress(goals, tasks, nil)
	for _, g := range uniform {
		if g.Progress != 25 {
			t.Fatalf("uniform policy: %s progress = %d, want 25", g.ID, g.Progress)
		}
	}
	if goals[0].Progress != 50 {
		t.Fatal("input goals must not be modified")
	}

	bonus := ApplyGoalProgress(goals, tasksWith(4, 4), PolicyByName("weekly_bonus", 20))
	if bonus[0].Progress != 100 || bonus[1].Progress != 100 {
		t.Fatalf("expected clamp to 100, got %+v", bonus)
	}
	bonus = ApplyGoalProgress(goals, tasks, PolicyByName("weekly_bonus", 20))
	if bonus[0].Progress != 45 || bonus[1].Progress != 25 {
		t.Fatalf("unexpected weekly bonus progress: %+v", bonus)
	}
}

func TestUpsertTodayRecord(t *testing.T) {
	history := []model.ProgressRecord{
		{Date: "2026-02-07", Progress: 20, CompletedTasks: 1, TotalTasks: 5},
		{Date: "2026-02-08", Progress: 100, CompletedTasks: 3, TotalTasks: 3},
	}

	once := UpsertTodayRecord(history, "2026-02-09", 50, 2, 4)
	twice := UpsertTodayRecord(once, "2026-02-09", 50, 2, 4)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("upsert not idempotent:\n%+v\n%+v", once, twice)
	}
	if len(once) != 3 || len(history) != 2 {
		t.Fatalf("unexpected lengths: once=%d history=%d", len(once), len(history))
	}

	updated := UpsertTodayRecord(once, "2026-02-09", 75, 3, 4)
	if len(updated) != 3 {
		t.Fatalf("expected in-place update, got %d records", len(updated))
	}
	rec, ok := FindRecord(updated, "2026-02-09")
	if !ok || rec.Progress != 75 || rec.CompletedTasks != 3 {
		t.Fatalf("expected last write to win, got %+v", rec)
	}
	if updated[0] != history[0] || updated[1] != history[1] {
		t.Fatal("past records must pass through unchanged")
	}
}

func TestPerfectDayTransition(t *testing.T) {
	today := "2026-02-09"
	prev := model.ProgressRecord{Date: today, Progress: 75}
	if !PerfectDayTransition(prev, true, 100, 4, "", today) {
		t.Fatal("expected transition from 75 to 100")
	}
	if !PerfectDayTransition(model.ProgressRecord{}, false, 100, 1, "2026-02-08", today) {
		t.Fatal("expected transition with no previous record")
	}
	if PerfectDayTransition(model.ProgressRecord{Date: today, Progress: 100}, true, 100, 4, "", today) {
		t.Fatal("already at 100 must not fire")
	}
	if PerfectDayTransition(prev, true, 100, 4, today, today) {
		t.Fatal("second perfect day on the same date must not fire")
	}
	if PerfectDayTransition(model.ProgressRecord{}, false, 100, 0, "", today) {
		t.Fatal("empty task list must not fire")
	}
}

func TestWeeklySnapshot(t *testing.T) {
	today := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	history := []model.ProgressRecord{
		{Date: "2026-02-03", Progress: 40},
		{Date: "2026-02-09", Progress: 80},
		{Date: "2026-01-01", Progress: 100},
	}
	snap := WeeklySnapshot(history, today)
	if len(snap) != 7 {
		t.Fatalf("expected 7 days, got %d", len(snap))
	}
	if snap[0].Date != "2026-02-03" || snap[0].Progress != 40 {
		t.Fatalf("unexpected first day: %+v", snap[0])
	}
	if snap[6].Date != "2026-02-09" || snap[6].Progress != 80 || snap[6].Weekday != "Mon" {
		t.Fatalf("unexpected last day: %+v", snap[6])
	}
	if snap[3].Progress != 0 {
		t.Fatalf("missing day should be 0, got %+v", snap[3])
	}
}

func TestProductivityLevel(t *testing.T) {
	want := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 4, 20: 4}
	for completed, level := range want {
		if got := ProductivityLevel(completed); got != level {
			t.Fatalf("ProductivityLevel(%d) = %d, want %d", completed, got, level)
		}
	}
}
