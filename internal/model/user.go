package model

type User struct {
	BaseModel
	Username  string `gorm:"size:100;unique;not null" json:"username"`
	Email     string `gorm:"size:100;unique;not null" json:"email"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	TotalXP   int    `gorm:"default:0" json:"total_xp"`
	Level     int    `gorm:"default:1" json:"level"` // derived from TotalXP, recomputed on every credit
}

func (User) TableName() string {
	return "users"
}
