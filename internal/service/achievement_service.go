package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artlearn_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	Redis           *redis.Client
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		Redis:           rdb,
	}
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	TotalXP  int    `json:"total_xp"`
	Avatar   string `json:"avatar,omitempty"`
}

// DefaultLeaderboardLimit is the leaderboard size served when the client
// does not ask for one.
const DefaultLeaderboardLimit = 10

// leaderboardCacheKey is per requested size, so differently sized
// leaderboards never share a cache entry.
func leaderboardCacheKey(limit int) string {
	return fmt.Sprintf("achievements:leaderboard:%d", limit)
}

// GetUserAchievements returns the full catalog annotated with the user's
// unlock state, ordered by achievement id.
func (s *AchievementService) GetUserAchievements(userID uint) ([]repository.AchievementStatus, error) {
	return s.AchievementRepo.FindAllWithStatus(userID)
}

func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	cacheKey := leaderboardCacheKey(limit)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:     i + 1,
			Username: user.Username,
			Level:    user.Level,
			TotalXP:  user.TotalXP,
			Avatar:   user.AvatarURL,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(leaderboard); err == nil {
			s.Redis.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return leaderboard, nil
}
