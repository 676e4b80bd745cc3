package repository

import (
	"time"

	"artlearn_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// AchievementStatus is a catalog entry annotated with the caller's unlock
// state, in the shape the web client renders.
type AchievementStatus struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Icon             string     `json:"icon"`
	RequirementType  string     `json:"requirement_type"`
	RequirementValue int        `json:"requirement_value"`
	Unlocked         bool       `json:"unlocked"`
	UnlockedAt       *time.Time `json:"unlocked_at"`
}

// FindAllWithStatus returns the whole catalog ordered by id, left-joined
// against the user's unlock records.
func (r *AchievementRepository) FindAllWithStatus(userID uint) ([]AchievementStatus, error) {
	var statuses []AchievementStatus
	err := r.DB.Model(&model.Achievement{}).
		Select("achievements.id, achievements.name, achievements.description, achievements.icon, "+
			"achievements.requirement_type, achievements.requirement_value, "+
			"user_achievements.id IS NOT NULL AS unlocked, user_achievements.unlocked_at").
		Joins("LEFT JOIN user_achievements ON user_achievements.achievement_id = achievements.id AND user_achievements.user_id = ?", userID).
		Order("achievements.id").
		Scan(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
