package service

import (
	"context"
	"encoding/json"
	"time"

	"artlearn_backend/internal/model"
	"artlearn_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const lessonCatalogCacheKey = "lessons:catalog"

// LessonService serves the lesson catalog. The full catalog rarely changes,
// so it is cached in Redis with a short TTL when a client is configured.
type LessonService struct {
	LessonRepo *repository.LessonRepository
	Redis      *redis.Client
}

func NewLessonService(lessonRepo *repository.LessonRepository, rdb *redis.Client) *LessonService {
	return &LessonService{LessonRepo: lessonRepo, Redis: rdb}
}

func (s *LessonService) GetLessons(ctx context.Context) ([]model.Lesson, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, lessonCatalogCacheKey).Result(); err == nil {
			var cached []model.Lesson
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	lessons, err := s.LessonRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(lessons); err == nil {
			s.Redis.Set(ctx, lessonCatalogCacheKey, data, 10*time.Minute)
		}
	}

	return lessons, nil
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(id)
}
