package domain

import "time"

type AchievementDefinition struct {
	Code             string
	Category         AchievementCategory
	Title            string
	Description      string
	ThresholdValue   int
	Points           int
	Rarity           Rarity
	PrerequisiteCode string
}

// UserAchievement tracks one achievement's progress. IsComplete implies
// ProgressValue >= the definition's threshold and a non-nil EarnedAt.
type UserAchievement struct {
	Code          string
	ProgressValue int
	IsComplete    bool
	EarnedAt      *time.Time
	Notified      bool
	UpdatedAt     time.Time
}

// AchievementCatalog is the fixed set of achievements the evaluator
// iterates on every relevant event.
func AchievementCatalog() []AchievementDefinition {
	return []AchievementDefinition{
		{Code: "streak_3", Category: CategoryStreak, Title: "Getting Started", Description: "Study 3 days in a row", ThresholdValue: 3, Points: 10, Rarity: RarityCommon},
		{Code: "streak_7", Category: CategoryStreak, Title: "One Week Strong", Description: "Study 7 days in a row", ThresholdValue: 7, Points: 25, Rarity: RarityCommon, PrerequisiteCode: "streak_3"},
		{Code: "streak_30", Category: CategoryStreak, Title: "Monthly Master", Description: "Study 30 days in a row", ThresholdValue: 30, Points: 100, Rarity: RarityRare, PrerequisiteCode: "streak_7"},
		{Code: "streak_100", Category: CategoryStreak, Title: "Century Scholar", Description: "Study 100 days in a row", ThresholdValue: 100, Points: 500, Rarity: RarityLegendary, PrerequisiteCode: "streak_30"},
		{Code: "deep_work_1", Category: CategoryStudy, Title: "Deep Diver", Description: "Complete a 90-minute deep work session", ThresholdValue: 1, Points: 15, Rarity: RarityCommon},
		{Code: "deep_work_10", Category: CategoryStudy, Title: "Focus Veteran", Description: "Complete 10 deep work sessions", ThresholdValue: 10, Points: 50, Rarity: RarityRare, PrerequisiteCode: "deep_work_1"},
		{Code: "tasks_10", Category: CategoryGoal, Title: "Task Tamer", Description: "Complete 10 tasks", ThresholdValue: 10, Points: 10, Rarity: RarityCommon},
		{Code: "tasks_100", Category: CategoryGoal, Title: "Centurion", Description: "Complete 100 tasks", ThresholdValue: 100, Points: 100, Rarity: RarityRare, PrerequisiteCode: "tasks_10"},
		{Code: "revision_master", Category: CategoryRevision, Title: "Revision Master", Description: "Complete all revisions for 5 chapters", ThresholdValue: 5, Points: 30, Rarity: RarityRare},
		{Code: "early_bird", Category: CategorySpecial, Title: "Early Bird", Description: "Start a study session before 07:00", ThresholdValue: 1, Points: 20, Rarity: RarityCommon},
		{Code: "night_owl", Category: CategorySpecial, Title: "Night Owl", Description: "Finish a study session after 23:00", ThresholdValue: 1, Points: 20, Rarity: RarityCommon},
		{Code: "perfectionist", Category: CategoryGoal, Title: "Perfectionist", Description: "Finish every planned task 7 days in a row", ThresholdValue: 7, Points: 75, Rarity: RarityEpic},
	}
}
