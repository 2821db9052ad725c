package model

// SeedStreak is the momentum streak a fresh install starts with.
const SeedStreak = 5

func SeedTasks() []Task {
	return []Task{
		{ID: "1", Text: "Complete project proposal", Completed: false},
		{ID: "2", Text: "Workout for 30 minutes", Completed: true},
		{ID: "3", Text: "Read 1 chapter of a book", Completed: false},
		{ID: "4", Text: "Meditate for 10 minutes", Completed: true},
	}
}

func SeedGoals() []Goal {
	return []Goal{
		{ID: "g1", Title: "Weekly Fitness Goal", Type: GoalTypeWeekly, Progress: 50},
		{ID: "g2", Title: "Monthly Learning Goal", Type: GoalTypeMonthly, Progress: 50},
	}
}

func SeedAchievements() []Achievement {
	return achievementCatalog()
}

func SeedUserStats() UserStats {
	return UserStats{Level: 1, XP: 0}
}

func SeedNotificationSettings() NotificationSettings {
	return NotificationSettings{}
}
