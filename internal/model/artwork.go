package model

type Artwork struct {
	BaseModel
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	Title         string `gorm:"size:200" json:"title"`
	Description   string `gorm:"size:500" json:"description"`
	ImageURL      string `gorm:"size:500;not null" json:"image_url"`
	LikesCount    int    `gorm:"default:0" json:"likes"`
	CommentsCount int    `gorm:"default:0" json:"comments"`
}

func (Artwork) TableName() string {
	return "artworks"
}
