package derive

import "github.com/sandeepkv93/goaltrack/internal/model"

// ApplyXP adds amount and rolls over as many levels as the total covers.
func ApplyXP(stats model.UserStats, amount int) (model.UserStats, bool, int) {
	if stats.Level < 1 {
		stats.Level = 1
	}
	stats.XP += amount
	leveledUp := false
	for stats.XP >= stats.Threshold() {
		stats.XP -= stats.Threshold()
		stats.Level++
		leveledUp = true
	}
	return stats, leveledUp, stats.Level
}

// LevelProgress is the percent of the current level's threshold already earned.
func LevelProgress(stats model.UserStats) int {
	threshold := stats.Threshold()
	if threshold <= 0 {
		return 0
	}
	return percent(stats.XP, threshold)
}
