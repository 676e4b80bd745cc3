package model

type Lesson struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	Duration    int    `json:"duration"` // minutes
	Difficulty  string `gorm:"size:50" json:"difficulty"`
	Icon        string `gorm:"size:100" json:"icon"`
	OrderIndex  int    `gorm:"index" json:"order_index"`
}

func (Lesson) TableName() string {
	return "lessons"
}
