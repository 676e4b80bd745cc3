package controller

import (
	"errors"

	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// @Summary List lessons or fetch one by id
// @Tags lessons
// @Router /api/lessons [get]
func (c *LessonController) GetLessons(ctx *gin.Context) {
	if idStr := ctx.Query("id"); idStr != "" {
		lesson, err := c.LessonService.GetLesson(util.MustParseUint(idStr))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.NotFound(ctx, util.ErrLessonNotFound.Error())
				return
			}
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, lesson)
		return
	}

	lessons, err := c.LessonService.GetLessons(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}
