package state

import (
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

// commitTasksLocked runs one derivation pass for a task change and persists
// every key it touches before dispatching side effects.
func (s *Store) commitTasksLocked(tasks []model.Task, xpGain int) {
	now := s.now()
	today := model.DayKey(now)
	completed := derive.CountCompleted(tasks)
	total := len(tasks)
	progress := derive.DailyProgress(tasks)

	prev, hadPrev := derive.FindRecord(s.history, today)
	history := derive.UpsertTodayRecord(s.history, today, progress, completed, total)
	goals := derive.ApplyGoalProgress(s.goals, tasks, s.policy)
	achievements, unlockedIDs := derive.EvaluateAchievements(derive.AchievementInput{
		Tasks:         tasks,
		DailyProgress: progress,
		Streak:        s.momentum,
		Goals:         goals,
	}, s.achievements)

	stats := s.stats
	leveledUp, newLevel := false, stats.Level
	if xpGain > 0 {
		stats, leveledUp, newLevel = derive.ApplyXP(stats, xpGain)
	}

	perfect := derive.PerfectDayTransition(prev, hadPrev, progress, total, s.lastCelebration, today)
	if perfect {
		s.lastCelebration = today
		storage.Set(s.kv, KeyLastCelebration, s.lastCelebration)
	}

	s.tasks, s.history, s.goals, s.achievements, s.stats = tasks, history, goals, achievements, stats
	storage.Set(s.kv, KeyTasks, s.tasks)
	storage.Set(s.kv, KeyGoals, s.goals)
	storage.Set(s.kv, KeyProgressHistory, s.history)
	storage.Set(s.kv, KeyAchievements, s.achievements)
	storage.Set(s.kv, KeyUserStats, s.stats)

	notes := s.dispatcher.Dispatch(effects.Event{
		Unlocked:   lookupAchievements(achievements, unlockedIDs),
		LeveledUp:  leveledUp,
		NewLevel:   newLevel,
		PerfectDay: perfect,
		Settings:   s.settings,
		Incomplete: total - completed,
	})
	s.recordLocked(notes...)
}

// commitGoalsLocked persists a goal change and unlocks goal-driven
// achievements. Task-derived records are untouched.
func (s *Store) commitGoalsLocked(goals []model.Goal) {
	achievements, unlockedIDs := derive.EvaluateAchievements(derive.AchievementInput{
		Tasks:         s.tasks,
		DailyProgress: derive.DailyProgress(s.tasks),
		Streak:        s.momentum,
		Goals:         goals,
	}, s.achievements)

	s.goals, s.achievements = goals, achievements
	storage.Set(s.kv, KeyGoals, s.goals)
	if len(unlockedIDs) == 0 {
		return
	}
	storage.Set(s.kv, KeyAchievements, s.achievements)
	notes := s.dispatcher.Dispatch(effects.Event{
		Unlocked:   lookupAchievements(achievements, unlockedIDs),
		Settings:   s.settings,
		Incomplete: s.incompleteLocked(),
	})
	s.recordLocked(notes...)
}

// recordLocked prepends notifications newest first and applies retention.
func (s *Store) recordLocked(notes ...model.AppNotification) {
	if len(notes) == 0 {
		return
	}
	out := make([]model.AppNotification, 0, len(notes)+len(s.notifications))
	for i := len(notes) - 1; i >= 0; i-- {
		out = append(out, notes[i])
	}
	out = append(out, s.notifications...)
	if len(out) > s.retention {
		out = out[:s.retention]
	}
	s.notifications = out
	storage.Set(s.kv, KeyNotifications, s.notifications)
}

func lookupAchievements(all []model.Achievement, ids []model.AchievementID) []model.Achievement {
	out := make([]model.Achievement, 0, len(ids))
	for _, id := range ids {
		for _, a := range all {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
