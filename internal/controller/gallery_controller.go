package controller

import (
	"errors"

	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	GalleryService *service.GalleryService
}

func NewGalleryController(galleryService *service.GalleryService) *GalleryController {
	return &GalleryController{GalleryService: galleryService}
}

type uploadArtworkRequest struct {
	UserID      uint   `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"` // base64-encoded
}

// @Summary Community gallery feed
// @Tags gallery
// @Router /api/gallery [get]
func (c *GalleryController) GetGallery(ctx *gin.Context) {
	items, err := c.GalleryService.GetFeed()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary Upload an artwork
// @Tags gallery
// @Router /api/gallery [post]
func (c *GalleryController) UploadArtwork(ctx *gin.Context) {
	var req uploadArtworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.Image == "" {
		util.BadRequest(ctx, "user_id and image required")
		return
	}

	if req.Title == "" {
		req.Title = "Untitled"
	}

	artwork, err := c.GalleryService.PublishArtwork(ctx.Request.Context(), req.UserID, req.Title, req.Description, req.Image)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":        artwork.ID,
		"image_url": artwork.ImageURL,
	})
}
