package service

import (
	"artlearn_backend/internal/model"
	"artlearn_backend/internal/repository"
)

type ExerciseService struct {
	ExerciseRepo *repository.ExerciseRepository
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{ExerciseRepo: exerciseRepo}
}

// GetExercises returns the catalog ordered by point value, cheapest first.
func (s *ExerciseService) GetExercises() ([]model.Exercise, error) {
	return s.ExerciseRepo.FindAll()
}
