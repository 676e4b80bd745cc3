package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"artlearn_backend/internal/model"
	"artlearn_backend/internal/repository"
	"artlearn_backend/internal/util"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image payload")

const galleryFeedLimit = 50

type GalleryService struct {
	ArtworkRepo *repository.ArtworkRepository
	Storage     *StorageService
}

func NewGalleryService(artworkRepo *repository.ArtworkRepository, storage *StorageService) *GalleryService {
	return &GalleryService{ArtworkRepo: artworkRepo, Storage: storage}
}

func (s *GalleryService) GetFeed() ([]repository.GalleryItem, error) {
	return s.ArtworkRepo.FindRecent(galleryFeedLimit)
}

// PublishArtwork decodes the base64 image, stores it in the object store
// under a uuid-based key and records the artwork.
func (s *GalleryService) PublishArtwork(ctx context.Context, userID uint, title, description, imageBase64 string) (*model.Artwork, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, ErrInvalidImage
	}

	if !util.IsImage(util.DetectMimeType(data)) {
		return nil, ErrInvalidImage
	}

	filename := fmt.Sprintf("gallery/%d_%s.png", userID, uuid.New().String())
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimePNG)
	if err != nil {
		return nil, err
	}

	artwork := &model.Artwork{
		UserID:      userID,
		Title:       title,
		Description: description,
		ImageURL:    url,
	}
	if err := s.ArtworkRepo.Create(artwork); err != nil {
		return nil, err
	}

	return artwork, nil
}
