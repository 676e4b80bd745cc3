package repository

import (
	"artlearn_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.LessonProgress, error) {
	var progress []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Order("lesson_id").Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) CountCompletedLessons(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedExercises(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseResult{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
