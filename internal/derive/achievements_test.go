package derive

import (
	"testing"

	"github.com/sandeepkv93/goaltrack/internal/model"
)

func TestEvaluateAchievementsUnlocksMatchingRules(t *testing.T) {
	tasks := tasksWith(4, 4)
	in := AchievementInput{
		Tasks:         tasks,
		DailyProgress: DailyProgress(tasks),
		Streak:        5,
		Goals:         ApplyGoalProgress(model.SeedGoals(), tasks, nil),
	}
	next, unlocked := EvaluateAchievements(in, model.SeedAchievements())

	want := []model.AchievementID{model.AchievementFirstTask, model.AchievementPerfectDay, model.AchievementGoalGetter}
	if len(unlocked) != len(want) {
		t.Fatalf("unexpected unlocked ids: %v", unlocked)
	}
	for i := range want {
		if unlocked[i] != want[i] {
			t.Fatalf("unlocked[%d] = %s, want %s", i, unlocked[i], want[i])
		}
	}
	for _, a := range next {
		isWanted := a.ID == model.AchievementFirstTask || a.ID == model.AchievementPerfectDay || a.ID == model.AchievementGoalGetter
		if a.Unlocked != isWanted {
			t.Fatalf("unexpected unlocked state for %s: %v", a.ID, a.Unlocked)
		}
	}
}

func TestEvaluateAchievementsIsMonotonic(t *testing.T) {
	all := model.SeedAchievements()
	for i := range all {
		all[i].Unlocked = true
	}
	next, unlocked := EvaluateAchievements(AchievementInput{}, all)
	if len(unlocked) != 0 {
		t.Fatalf("nothing new should unlock, got %v", unlocked)
	}
	for _, a := range next {
		if !a.Unlocked {
			t.Fatalf("achievement %s was re-locked", a.ID)
		}
	}
}

func TestEvaluateAchievementsThresholds(t *testing.T) {
	in := AchievementInput{Tasks: tasksWith(10, 12), Streak: 7}
	in.DailyProgress = DailyProgress(in.Tasks)
	_, unlocked := EvaluateAchievements(in, model.SeedAchievements())
	got := map[model.AchievementID]bool{}
	for _, id := range unlocked {
		got[id] = true
	}
	if !got[model.AchievementTenTasks] || !got[model.AchievementWeekStreak] {
		t.Fatalf("expected ten-tasks and week-streak, got %v", unlocked)
	}
	if got[model.AchievementPerfectDay] {
		t.Fatal("perfect day must require 100% progress")
	}
}
