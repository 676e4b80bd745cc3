package repository

import (
	"time"

	"artlearn_backend/internal/model"

	"gorm.io/gorm"
)

type ArtworkRepository struct {
	DB *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{DB: db}
}

// GalleryItem is an artwork joined with its author for the public feed.
type GalleryItem struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Author      string    `json:"author"`
	Level       int       `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *ArtworkRepository) Create(artwork *model.Artwork) error {
	return r.DB.Create(artwork).Error
}

// FindRecent returns the newest artworks with author attribution.
func (r *ArtworkRepository) FindRecent(limit int) ([]GalleryItem, error) {
	var items []GalleryItem
	err := r.DB.Model(&model.Artwork{}).
		Select("artworks.id, artworks.user_id, users.username AS author, users.level, " +
			"artworks.title, artworks.description, artworks.image_url, " +
			"artworks.likes_count AS likes, artworks.comments_count AS comments, artworks.created_at").
		Joins("JOIN users ON users.id = artworks.user_id").
		Order("artworks.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
