package controller

import (
	"time"

	"artlearn_backend/internal/repository"
	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	RewardService      *service.RewardService
	AchievementService *service.AchievementService
	ProgressRepo       *repository.ProgressRepository
}

func NewProgressController(
	rewardService *service.RewardService,
	achievementService *service.AchievementService,
	progressRepo *repository.ProgressRepository,
) *ProgressController {
	return &ProgressController{
		RewardService:      rewardService,
		AchievementService: achievementService,
		ProgressRepo:       progressRepo,
	}
}

type completeLessonRequest struct {
	UserID   uint `json:"user_id"`
	LessonID uint `json:"lesson_id"`
	Rating   *int `json:"rating"`
}

type progressItem struct {
	LessonID    uint       `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Rating      *int       `json:"rating"`
}

// @Summary Mark a lesson completed
// @Tags progress
// @Router /api/progress [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	var req completeLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.LessonID == 0 {
		util.BadRequest(ctx, "user_id and lesson_id required")
		return
	}

	result, err := c.RewardService.RecordCompletion(req.UserID, req.LessonID, service.ActivityLesson, service.CompletionOptions{
		Rating: req.Rating,
	})
	if err != nil {
		mapRewardError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":               result.CompletionID,
		"xp_earned":        result.XPEarned,
		"new_achievements": result.NewAchievements,
	})
}

// @Summary Get a user's progress or achievements
// @Tags progress
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Query("user_id"))
	if userID == 0 {
		util.BadRequest(ctx, "user_id required")
		return
	}

	if ctx.Query("action") == "achievements" {
		achievements, err := c.AchievementService.GetUserAchievements(userID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, achievements)
		return
	}

	progress, err := c.ProgressRepo.FindByUser(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	items := make([]progressItem, len(progress))
	for i, p := range progress {
		items[i] = progressItem{
			LessonID:    p.LessonID,
			Completed:   p.Completed,
			CompletedAt: p.CompletedAt,
			Rating:      p.Rating,
		}
	}
	util.Success(ctx, items)
}

func mapRewardError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrExerciseNotFound, util.ErrLessonNotFound, util.ErrUserNotFound:
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
