package model

import (
	"errors"
	"fmt"
)

var ErrUnknownAchievement = errors.New("model: unknown achievement")

type AchievementID string

const (
	AchievementFirstTask  AchievementID = "first-task"
	AchievementTenTasks   AchievementID = "ten-tasks"
	AchievementPerfectDay AchievementID = "perfect-day"
	AchievementWeekStreak AchievementID = "week-streak"
	AchievementGoalGetter AchievementID = "goal-getter"
)

// AchievementIDs lists the fixed catalog in display order.
var AchievementIDs = []AchievementID{
	AchievementFirstTask,
	AchievementTenTasks,
	AchievementPerfectDay,
	AchievementWeekStreak,
	AchievementGoalGetter,
}

func (a AchievementID) IsValid() bool {
	for _, id := range AchievementIDs {
		if id == a {
			return true
		}
	}
	return false
}

type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Unlocked    bool          `json:"unlocked"`
}

func (a Achievement) Validate() error {
	if !a.ID.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownAchievement, a.ID)
	}
	if a.Name == "" {
		return errors.New("model: achievement name is required")
	}
	return nil
}

func achievementCatalog() []Achievement {
	return []Achievement{
		{ID: AchievementFirstTask, Name: "First Step", Description: "Complete your first task."},
		{ID: AchievementTenTasks, Name: "Task Master", Description: "Complete 10 tasks."},
		{ID: AchievementPerfectDay, Name: "Perfect Day", Description: "Complete every task on your list in a single day."},
		{ID: AchievementWeekStreak, Name: "Week Warrior", Description: "Keep a 7-day momentum streak."},
		{ID: AchievementGoalGetter, Name: "Goal Getter", Description: "Bring a goal to 100% progress."},
	}
}

// MergeAchievements returns the catalog with unlocked flags carried over from
// stored by id. Unknown stored ids are dropped and missing ones come back locked.
func MergeAchievements(stored []Achievement) []Achievement {
	unlocked := make(map[AchievementID]bool, len(stored))
	for _, a := range stored {
		if a.Unlocked {
			unlocked[a.ID] = true
		}
	}
	out := achievementCatalog()
	for i := range out {
		out[i].Unlocked = unlocked[out[i].ID]
	}
	return out
}
