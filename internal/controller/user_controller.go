package controller

import (
	"errors"

	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// @Summary Create a user
// @Tags users
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" {
		util.BadRequest(ctx, "username and email required")
		return
	}

	user, err := c.UserService.CreateUser(req.Username, req.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"level":    user.Level,
		"total_xp": user.TotalXP,
	})
}

// @Summary Get a user profile with completion counts
// @Tags users
// @Router /api/users [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Query("id"))
	if userID == 0 {
		util.BadRequest(ctx, "id required")
		return
	}

	profile, err := c.UserService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, util.ErrUserNotFound.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
