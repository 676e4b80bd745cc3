package database

import (
	"log"

	"artlearn_backend/internal/config"
	"artlearn_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs the schema migration and seeds the achievement catalog when it
// is empty. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.Exercise{},
		&model.LessonProgress{},
		&model.ExerciseResult{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Artwork{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count == 0 {
		defaults := []model.Achievement{
			{Name: "First Stroke", Description: "Complete your first lesson", Icon: "🎨", RequirementType: model.ReqLessonsCompleted, RequirementValue: 1},
			{Name: "Dedicated Student", Description: "Complete 5 lessons", Icon: "📚", RequirementType: model.ReqLessonsCompleted, RequirementValue: 5},
			{Name: "Course Graduate", Description: "Complete 10 lessons", Icon: "🎓", RequirementType: model.ReqLessonsCompleted, RequirementValue: 10},
			{Name: "Warm Up", Description: "Complete your first exercise", Icon: "✏️", RequirementType: model.ReqExercisesCompleted, RequirementValue: 1},
			{Name: "Practice Makes Perfect", Description: "Complete 10 exercises", Icon: "💪", RequirementType: model.ReqExercisesCompleted, RequirementValue: 10},
			{Name: "Portrait Master", Description: "Finish the portrait fundamentals lesson", Icon: "🖼️", RequirementType: model.ReqSpecificLesson, RequirementValue: 7},
		}
		for _, a := range defaults {
			db.Create(&a)
		}
	}

	return nil
}
