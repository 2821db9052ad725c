package derive

import "github.com/sandeepkv93/goaltrack/internal/model"

type AchievementInput struct {
	Tasks         []model.Task
	DailyProgress int
	Streak        int
	Goals         []model.Goal
}

type achievementRule func(in AchievementInput) bool

var achievementRules = map[model.AchievementID]achievementRule{
	model.AchievementFirstTask: func(in AchievementInput) bool {
		return CountCompleted(in.Tasks) >= 1
	},
	model.AchievementTenTasks: func(in AchievementInput) bool {
		return CountCompleted(in.Tasks) >= 10
	},
	model.AchievementPerfectDay: func(in AchievementInput) bool {
		return in.DailyProgress == 100 && len(in.Tasks) >= 1
	},
	model.AchievementWeekStreak: func(in AchievementInput) bool {
		return in.Streak >= 7
	},
	model.AchievementGoalGetter: func(in AchievementInput) bool {
		for _, g := range in.Goals {
			if g.Progress >= 100 {
				return true
			}
		}
		return false
	},
}

// EvaluateAchievements unlocks every achievement whose rule holds. Unlocked
// achievements stay unlocked. The second return lists only the ids unlocked by
// this call, in catalog order.
func EvaluateAchievements(in AchievementInput, achievements []model.Achievement) ([]model.Achievement, []model.AchievementID) {
	out := make([]model.Achievement, len(achievements))
	copy(out, achievements)
	var unlocked []model.AchievementID
	for i := range out {
		if out[i].Unlocked {
			continue
		}
		rule, ok := achievementRules[out[i].ID]
		if !ok || !rule(in) {
			continue
		}
		out[i].Unlocked = true
		unlocked = append(unlocked, out[i].ID)
	}
	return out, unlocked
}
