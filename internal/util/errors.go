package util

import "errors"

var (
	ErrUserNotFound     = errors.New("User not found")
	ErrLessonNotFound   = errors.New("Lesson not found")
	ErrExerciseNotFound = errors.New("Exercise not found")
)
