package controller

import (
	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
	RewardService   *service.RewardService
}

func NewExerciseController(exerciseService *service.ExerciseService, rewardService *service.RewardService) *ExerciseController {
	return &ExerciseController{
		ExerciseService: exerciseService,
		RewardService:   rewardService,
	}
}

type completeExerciseRequest struct {
	UserID     uint `json:"user_id"`
	ExerciseID uint `json:"exercise_id"`
	TimeSpent  *int `json:"time_spent"`
	Score      *int `json:"score"`
}

// @Summary List exercises
// @Tags exercises
// @Router /api/exercises [get]
func (c *ExerciseController) GetExercises(ctx *gin.Context) {
	exercises, err := c.ExerciseService.GetExercises()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// @Summary Complete an exercise
// @Tags exercises
// @Router /api/exercises/complete [post]
func (c *ExerciseController) CompleteExercise(ctx *gin.Context) {
	var req completeExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ExerciseID == 0 {
		util.BadRequest(ctx, "user_id and exercise_id required")
		return
	}

	// Clients that do not self-assess report a full score.
	if req.Score == nil {
		full := 100
		req.Score = &full
	}

	result, err := c.RewardService.RecordCompletion(req.UserID, req.ExerciseID, service.ActivityExercise, service.CompletionOptions{
		TimeSpent: req.TimeSpent,
		Score:     req.Score,
	})
	if err != nil {
		mapRewardError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":               result.CompletionID,
		"xp_earned":        result.XPEarned,
		"total_xp":         result.TotalXP,
		"new_achievements": result.NewAchievements,
	})
}
