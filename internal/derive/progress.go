// Package derive holds the pure functions that turn the current task list and
// stored state into the derived fields: progress, history, achievements, XP.
package derive

import (
	"math"
	"time"

	"github.com/sandeepkv93/goaltrack/internal/model"
)

func CountCompleted(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func DailyProgress(tasks []model.Task) int {
	return percent(CountCompleted(tasks), len(tasks))
}

func GoalProgress(tasks []model.Task) int {
	return percent(CountCompleted(tasks), len(tasks))
}

// ProgressPolicy maps the shared task-derived progress onto a single goal.
type ProgressPolicy interface {
	GoalProgress(goal model.Goal, base int) int
}

type UniformPolicy struct{}

func (UniformPolicy) GoalProgress(_ model.Goal, base int) int {
	return clampPercent(base)
}

type WeeklyBonusPolicy struct {
	Bonus int
}

func (p WeeklyBonusPolicy) GoalProgress(goal model.Goal, base int) int {
	if goal.Type == model.GoalTypeWeekly {
		return clampPercent(base + p.Bonus)
	}
	return clampPercent(base)
}

func PolicyByName(name string, weeklyBonus int) ProgressPolicy {
	if name == "weekly_bonus" {
		return WeeklyBonusPolicy{Bonus: weeklyBonus}
	}
	return UniformPolicy{}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ApplyGoalProgress returns a new slice with every goal's progress recomputed
// from tasks. A nil policy means UniformPolicy.
func ApplyGoalProgress(goals []model.Goal, tasks []model.Task, policy ProgressPolicy) []model.Goal {
	if policy == nil {
		policy = UniformPolicy{}
	}
	base := GoalProgress(tasks)
	out := make([]model.Goal, len(goals))
	for i, g := range goals {
		g.Progress = policy.GoalProgress(g, base)
		out[i] = g
	}
	return out
}

func FindRecord(history []model.ProgressRecord, day string) (model.ProgressRecord, bool) {
	for _, rec := range history {
		if rec.Date == day {
			return rec, true
		}
	}
	return model.ProgressRecord{}, false
}

// UpsertTodayRecord replaces the record for today or appends one. Other dates
// pass through untouched and the input slice is never modified.
func UpsertTodayRecord(history []model.ProgressRecord, today string, progress, completed, total int) []model.ProgressRecord {
	next := model.ProgressRecord{
		Date:           today,
		Progress:       progress,
		CompletedTasks: completed,
		TotalTasks:     total,
	}
	out := make([]model.ProgressRecord, 0, len(history)+1)
	replaced := false
	for _, rec := range history {
		if rec.Date == today {
			if !replaced {
				out = append(out, next)
				replaced = true
			}
			continue
		}
		out = append(out, rec)
	}
	if !replaced {
		out = append(out, next)
	}
	return out
}

// PerfectDayTransition reports whether today's progress just crossed into 100%.
// prev is the record stored before this action; lastCelebrated is the day key
// of the last celebration so toggling back and forth cannot fire twice a day.
func PerfectDayTransition(prev model.ProgressRecord, hadPrev bool, progress, total int, lastCelebrated, today string) bool {
	if progress != 100 || total < 1 {
		return false
	}
	if hadPrev && prev.Progress >= 100 {
		return false
	}
	return lastCelebrated != today
}

type DayProgress struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Progress int    `json:"progress"`
}

// WeeklySnapshot returns the last seven days ending at today, oldest first.
// Days without a record report 0.
func WeeklySnapshot(history []model.ProgressRecord, today time.Time) []DayProgress {
	out := make([]DayProgress, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := model.DayKey(day)
		p := 0
		if rec, ok := FindRecord(history, key); ok {
			p = rec.Progress
		}
		out = append(out, DayProgress{Date: key, Weekday: day.Format("Mon"), Progress: p})
	}
	return out
}

// ProductivityLevel buckets a day's completed task count for the heatmap.
func ProductivityLevel(completed int) int {
	switch {
	case completed <= 0:
		return 0
	case completed <= 2:
		return 1
	case completed <= 4:
		return 2
	case completed <= 6:
		return 3
	default:
		return 4
	}
}
