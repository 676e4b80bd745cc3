package model

import "time"

type RequirementType string

const (
	ReqLessonsCompleted   RequirementType = "lessons_completed"
	ReqExercisesCompleted RequirementType = "exercises_completed"
	ReqSpecificLesson     RequirementType = "specific_lesson"
)

// Achievement is a catalog entry. The catalog is seeded at migration time and
// read-only afterwards; RequirementValue is a threshold count for the
// *_completed types and a lesson id for specific_lesson.
type Achievement struct {
	BaseModel
	Name             string          `gorm:"size:100;not null" json:"name"`
	Description      string          `gorm:"size:255" json:"description"`
	Icon             string          `gorm:"size:100" json:"icon"`
	RequirementType  RequirementType `gorm:"size:50;not null" json:"requirement_type"`
	RequirementValue int             `gorm:"not null" json:"requirement_value"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement records that an achievement has been unlocked for a user.
// Rows are never deleted, and the composite unique index guarantees at most
// one unlock per (user, achievement) even under racing completions.
type UserAchievement struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
