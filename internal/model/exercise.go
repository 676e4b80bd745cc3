package model

type Exercise struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	TimeMinutes int    `json:"time_minutes"`
	Points      int    `gorm:"default:0" json:"points"` // XP awarded on completion
	Icon        string `gorm:"size:100" json:"icon"`
	Difficulty  string `gorm:"size:50" json:"difficulty"`
}

func (Exercise) TableName() string {
	return "exercises"
}
