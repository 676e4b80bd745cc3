package service

import (
	"artlearn_backend/internal/model"
	"artlearn_backend/internal/repository"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
}

func NewUserService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository) *UserService {
	return &UserService{UserRepo: userRepo, ProgressRepo: progressRepo}
}

// UserProfile is the public profile: the account row plus completion tallies.
type UserProfile struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Level              int    `json:"level"`
	TotalXP            int    `json:"total_xp"`
	AvatarURL          string `json:"avatar_url"`
	CompletedLessons   int64  `json:"completed_lessons"`
	CompletedExercises int64  `json:"completed_exercises"`
}

func (s *UserService) CreateUser(username, email string) (*model.User, error) {
	user := &model.User{
		Username: username,
		Email:    email,
		Level:    1,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.ProgressRepo.CountCompletedLessons(userID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.ProgressRepo.CountCompletedExercises(userID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Level:              user.Level,
		TotalXP:            user.TotalXP,
		AvatarURL:          user.AvatarURL,
		CompletedLessons:   lessons,
		CompletedExercises: exercises,
	}, nil
}
