package service

import (
	"errors"
	"sync/atomic"
	"time"

	"artlearn_backend/internal/config"
	"artlearn_backend/internal/model"
	"artlearn_backend/internal/util"
	"artlearn_backend/pkg/logger"
	"artlearn_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityKind string

const (
	ActivityLesson   ActivityKind = "lesson"
	ActivityExercise ActivityKind = "exercise"
)

// CompletionOptions carries the optional per-kind fields of a completion
// request: Rating for lessons, TimeSpent/Score for exercises.
type CompletionOptions struct {
	Rating    *int
	TimeSpent *int
	Score     *int
}

type UnlockedAchievement struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CompletionResult struct {
	CompletionID    uint
	XPEarned        int
	TotalXP         int
	NewAchievements []UnlockedAchievement
}

// progressCounters are the per-user tallies achievement rules are evaluated
// against.
type progressCounters struct {
	LessonsCompleted   int64
	ExercisesCompleted int64
}

// RewardService turns a completed activity into a persisted completion
// record, an XP credit and any newly unlocked achievements, all inside one
// transaction. Concurrency safety leans on the store: completion and unlock
// rows are guarded by composite unique indexes and the XP credit is a single
// atomic UPDATE, so two racing completions for the same user cannot duplicate
// rows or lose a credit.
//
// The reward policy is held behind an atomic pointer because the config
// watcher swaps it from its own goroutine while requests are in flight. Each
// RecordCompletion call loads the policy once and uses that snapshot
// throughout.
type RewardService struct {
	DB     *gorm.DB
	reward atomic.Pointer[config.RewardConfig]
}

func NewRewardService(db *gorm.DB, reward config.RewardConfig) *RewardService {
	s := &RewardService{DB: db}
	s.SetPolicy(reward)
	return s
}

// Policy returns the current reward policy snapshot.
func (s *RewardService) Policy() config.RewardConfig {
	return *s.reward.Load()
}

// SetPolicy replaces the reward policy. Safe to call while completions are
// being recorded.
func (s *RewardService) SetPolicy(reward config.RewardConfig) {
	reward.Normalize()
	s.reward.Store(&reward)
}

// RecordCompletion records that userID finished the given activity and
// returns what the completion earned. Every write happens in one transaction;
// on error no partial state is left behind.
//
// Returns util.ErrExerciseNotFound when an exercise id has no catalog row and
// util.ErrUserNotFound when the user does not exist.
func (s *RewardService) RecordCompletion(userID, activityID uint, kind ActivityKind, opts CompletionOptions) (*CompletionResult, error) {
	result := &CompletionResult{NewAchievements: []UnlockedAchievement{}}
	var unlocked []model.Achievement
	cfg := s.Policy()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		xp, err := xpForActivity(tx, cfg, activityID, kind)
		if err != nil {
			return err
		}

		completionID, created, err := upsertCompletion(tx, userID, activityID, kind, now, opts)
		if err != nil {
			return err
		}
		result.CompletionID = completionID

		// Under "once" only the call that created the completion row credits
		// XP. The insert outcome decides, so two racing first completions
		// cannot both credit.
		creditXP := created || cfg.RepeatXP == config.RepeatXPAlways

		if creditXP {
			result.XPEarned = xp
			if err := tx.Model(&model.User{}).
				Where("id = ?", userID).
				Update("total_xp", gorm.Expr("total_xp + ?", xp)).Error; err != nil {
				return err
			}
		}

		// Read back inside the transaction: the fresh total feeds both the
		// response and the derived level.
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}
		result.TotalXP = user.TotalXP

		level := user.TotalXP/cfg.XPPerLevel + 1
		if level != user.Level {
			if err := tx.Model(&model.User{}).
				Where("id = ?", userID).
				Update("level", level).Error; err != nil {
				return err
			}
		}

		counters, err := countCompletions(tx, userID)
		if err != nil {
			return err
		}

		unlocked, err = s.unlockSatisfied(tx, userID, activityID, kind, counters, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, a := range unlocked {
		result.NewAchievements = append(result.NewAchievements, UnlockedAchievement{ID: a.ID, Name: a.Name})
		monitoring.AchievementUnlocks.WithLabelValues(string(a.RequirementType)).Inc()
		logger.Log.Info("achievement unlocked",
			zap.Uint("user_id", userID),
			zap.Uint("achievement_id", a.ID),
			zap.String("name", a.Name),
		)
	}

	return result, nil
}

// xpForActivity resolves the XP value of a completion: a flat configured
// award for lessons, the exercise's own point value for exercises.
func xpForActivity(tx *gorm.DB, cfg config.RewardConfig, activityID uint, kind ActivityKind) (int, error) {
	if kind == ActivityLesson {
		return cfg.LessonXP, nil
	}

	var exercise model.Exercise
	if err := tx.First(&exercise, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrExerciseNotFound
		}
		return 0, err
	}
	return exercise.Points, nil
}

// upsertCompletion inserts the completion row or refreshes it in place when
// the (user, activity) pair already exists. The conflict target is the
// composite unique index, so concurrent duplicates collapse to one row.
//
// The insert uses ON CONFLICT DO NOTHING and the returned created flag holds
// only for the call that actually created the row. That makes it a reliable
// first-completion signal even for two racing requests: one sees created,
// the other falls through to the in-place refresh.
func upsertCompletion(tx *gorm.DB, userID, activityID uint, kind ActivityKind, now time.Time, opts CompletionOptions) (uint, bool, error) {
	if kind == ActivityLesson {
		record := model.LessonProgress{
			UserID:      userID,
			LessonID:    activityID,
			Completed:   true,
			CompletedAt: &now,
			Rating:      opts.Rating,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&record)
		if res.Error != nil {
			return 0, false, res.Error
		}
		if res.RowsAffected > 0 {
			return record.ID, true, nil
		}

		// Conflict path: the driver does not report the surviving row's id;
		// re-read it so the response always references the real record.
		var existing model.LessonProgress
		if err := tx.Select("id").Where("user_id = ? AND lesson_id = ?", userID, activityID).First(&existing).Error; err != nil {
			return 0, false, err
		}
		err := tx.Model(&model.LessonProgress{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
				"rating":       opts.Rating,
				"updated_at":   now,
			}).Error
		return existing.ID, false, err
	}

	record := model.ExerciseResult{
		UserID:      userID,
		ExerciseID:  activityID,
		Completed:   true,
		CompletedAt: &now,
		TimeSpent:   opts.TimeSpent,
		Score:       opts.Score,
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
		DoNothing: true,
	}).Create(&record)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected > 0 {
		return record.ID, true, nil
	}

	var existing model.ExerciseResult
	if err := tx.Select("id").Where("user_id = ? AND exercise_id = ?", userID, activityID).First(&existing).Error; err != nil {
		return 0, false, err
	}
	err := tx.Model(&model.ExerciseResult{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
			"time_spent":   opts.TimeSpent,
			"score":        opts.Score,
			"updated_at":   now,
		}).Error
	return existing.ID, false, err
}

func countCompletions(tx *gorm.DB, userID uint) (progressCounters, error) {
	var counters progressCounters
	err := tx.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&counters.LessonsCompleted).Error
	if err != nil {
		return counters, err
	}
	err = tx.Model(&model.ExerciseResult{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&counters.ExercisesCompleted).Error
	return counters, err
}

// unlockSatisfied evaluates every still-locked catalog entry in ascending id
// order and inserts unlock records for the ones that pass. The insert uses ON
// CONFLICT DO NOTHING against the (user, achievement) unique index; a row the
// insert did not actually create (because a racing request won) is not
// reported as new.
func (s *RewardService) unlockSatisfied(tx *gorm.DB, userID, activityID uint, kind ActivityKind, counters progressCounters, now time.Time) ([]model.Achievement, error) {
	var pending []model.Achievement
	err := tx.
		Where("id NOT IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.UserAchievement{}).
			Select("achievement_id").
			Where("user_id = ?", userID)).
		Order("id").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}

	var unlocked []model.Achievement
	for _, achievement := range pending {
		if !ruleSatisfied(achievement, counters, activityID, kind) {
			continue
		}

		record := model.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    now,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).Create(&record)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			unlocked = append(unlocked, achievement)
		}
	}

	return unlocked, nil
}

// ruleSatisfied is the pure rule evaluator: no store access, just the rule,
// the counters and the activity that triggered this evaluation.
func ruleSatisfied(rule model.Achievement, counters progressCounters, activityID uint, kind ActivityKind) bool {
	switch rule.RequirementType {
	case model.ReqLessonsCompleted:
		return counters.LessonsCompleted >= int64(rule.RequirementValue)
	case model.ReqExercisesCompleted:
		return counters.ExercisesCompleted >= int64(rule.RequirementValue)
	case model.ReqSpecificLesson:
		return kind == ActivityLesson && activityID == uint(rule.RequirementValue)
	default:
		return false
	}
}
