package model

import "time"

// LessonProgress is the per-(user, lesson) completion record. The composite
// unique index makes re-completion an in-place update rather than a second
// row, including under concurrent requests.
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"user_id"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lesson_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Rating      *int       `json:"rating"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// ExerciseResult is the per-(user, exercise) completion record, unique per
// pair like LessonProgress.
type ExerciseResult struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_exercise;not null" json:"user_id"`
	ExerciseID  uint       `gorm:"uniqueIndex:idx_user_exercise;not null" json:"exercise_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	TimeSpent   *int       `json:"time_spent"`
	Score       *int       `json:"score"`
}

func (ExerciseResult) TableName() string {
	return "exercise_results"
}
