package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"artlearn_backend/internal/config"
	"artlearn_backend/internal/model"
	"artlearn_backend/internal/repository"
	"artlearn_backend/internal/service"
	"artlearn_backend/internal/util"
	"artlearn_backend/pkg/logger"
	"artlearn_backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.Exercise{},
		&model.LessonProgress{},
		&model.ExerciseResult{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Artwork{},
	))

	userRepo := repository.NewUserRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	rewardService := service.NewRewardService(db, config.RewardConfig{})
	achievementService := service.NewAchievementService(achievementRepo, userRepo, nil)
	lessonService := service.NewLessonService(lessonRepo, nil)
	exerciseService := service.NewExerciseService(exerciseRepo)
	userService := service.NewUserService(userRepo, progressRepo)

	progress := NewProgressController(rewardService, achievementService, progressRepo)
	exercise := NewExerciseController(exerciseService, rewardService)
	lesson := NewLessonController(lessonService)
	user := NewUserController(userService)
	achievement := NewAchievementController(achievementService)

	router := gin.New()
	router.Use(security.CORS())
	router.HandleMethodNotAllowed = true
	router.NoMethod(util.MethodNotAllowed)

	api := router.Group("/api")
	api.GET("/lessons", lesson.GetLessons)
	api.GET("/exercises", exercise.GetExercises)
	api.POST("/exercises/complete", exercise.CompleteExercise)
	api.GET("/progress", progress.GetProgress)
	api.POST("/progress", progress.CompleteLesson)
	api.POST("/users", user.CreateUser)
	api.GET("/users", user.GetUser)
	api.GET("/achievements/leaderboard", achievement.GetLeaderboard)

	return &testEnv{db: db, router: router}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{Username: "vera", Email: "vera@example.com", Level: 1}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCompleteExercise_Success(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)
	require.NoError(t, env.db.Create(&model.Exercise{Title: "line control", Points: 50}).Error)

	w := env.request(t, http.MethodPost, "/api/exercises/complete", gin.H{
		"user_id":     user.ID,
		"exercise_id": 1,
		"time_spent":  12,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 50, body["xp_earned"])
	assert.EqualValues(t, 50, body["total_xp"])
	assert.Empty(t, body["new_achievements"])
}

func TestCompleteExercise_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/exercises/complete", gin.H{"user_id": 1})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "user_id and exercise_id required", body["error"])

	// Validation failures must not touch the store.
	var results int64
	env.db.Model(&model.ExerciseResult{}).Count(&results)
	assert.Zero(t, results)
}

func TestCompleteExercise_UnknownExercise(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)

	w := env.request(t, http.MethodPost, "/api/exercises/complete", gin.H{
		"user_id":     user.ID,
		"exercise_id": 42,
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Exercise not found", body["error"])

	var stored model.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.Zero(t, stored.TotalXP)
}

func TestCompleteLesson_Success(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)
	require.NoError(t, env.db.Create(&model.Achievement{
		Name:             "First Stroke",
		RequirementType:  model.ReqLessonsCompleted,
		RequirementValue: 1,
	}).Error)

	w := env.request(t, http.MethodPost, "/api/progress", gin.H{
		"user_id":   user.ID,
		"lesson_id": 3,
		"rating":    4,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 100, body["xp_earned"])

	unlocked, ok := body["new_achievements"].([]interface{})
	require.True(t, ok)
	require.Len(t, unlocked, 1)
	first := unlocked[0].(map[string]interface{})
	assert.Equal(t, "First Stroke", first["name"])
}

func TestCompleteLesson_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/progress", gin.H{"lesson_id": 3})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "user_id and lesson_id required", body["error"])
}

func TestGetProgress_ListsCompletions(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)

	env.request(t, http.MethodPost, "/api/progress", gin.H{"user_id": user.ID, "lesson_id": 1})
	env.request(t, http.MethodPost, "/api/progress", gin.H{"user_id": user.ID, "lesson_id": 2, "rating": 5})

	w := env.request(t, http.MethodGet, "/api/progress?user_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0]["lesson_id"])
	assert.Equal(t, true, items[0]["completed"])
	assert.EqualValues(t, 5, items[1]["rating"])
}

func TestGetProgress_MissingUserID(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/progress", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "user_id required", body["error"])
}

func TestGetProgress_AchievementsListing(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)
	require.NoError(t, env.db.Create(&model.Achievement{
		Name:             "Warm Up",
		Description:      "Complete your first exercise",
		Icon:             "✏️",
		RequirementType:  model.ReqExercisesCompleted,
		RequirementValue: 1,
	}).Error)
	require.NoError(t, env.db.Create(&model.Achievement{
		Name:             "Dedicated Student",
		RequirementType:  model.ReqLessonsCompleted,
		RequirementValue: 5,
	}).Error)
	require.NoError(t, env.db.Create(&model.Exercise{Title: "shading drill", Points: 20}).Error)

	env.request(t, http.MethodPost, "/api/exercises/complete", gin.H{"user_id": user.ID, "exercise_id": 1})

	w := env.request(t, http.MethodGet, "/api/progress?user_id=1&action=achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)

	assert.Equal(t, "Warm Up", items[0]["name"])
	assert.Equal(t, true, items[0]["unlocked"])
	assert.NotNil(t, items[0]["unlocked_at"])

	assert.Equal(t, "Dedicated Student", items[1]["name"])
	assert.Equal(t, false, items[1]["unlocked"])
	assert.Nil(t, items[1]["unlocked_at"])
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/users", gin.H{
		"username": "vera",
		"email":    "vera@example.com",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "vera", body["username"])
	assert.EqualValues(t, 1, body["level"])
	assert.EqualValues(t, 0, body["total_xp"])
}

func TestCreateUser_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/users", gin.H{"username": "vera"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "username and email required", body["error"])
}

func TestGetUser_ProfileWithCounts(t *testing.T) {
	env := newTestEnv(t)
	user := seedTestUser(t, env.db)
	require.NoError(t, env.db.Create(&model.Exercise{Title: "perspective grid", Points: 35}).Error)

	env.request(t, http.MethodPost, "/api/progress", gin.H{"user_id": user.ID, "lesson_id": 1})
	env.request(t, http.MethodPost, "/api/exercises/complete", gin.H{"user_id": user.ID, "exercise_id": 1})

	w := env.request(t, http.MethodGet, "/api/users?id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "vera", body["username"])
	assert.EqualValues(t, 135, body["total_xp"])
	assert.EqualValues(t, 1, body["completed_lessons"])
	assert.EqualValues(t, 1, body["completed_exercises"])
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/users?id=99", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User not found", body["error"])
}

func TestGetLessons_ByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/lessons?id=5", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Lesson not found", body["error"])
}

func TestGetLessons_OrderedByIndex(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.Lesson{Title: "Color Theory", OrderIndex: 2}).Error)
	require.NoError(t, env.db.Create(&model.Lesson{Title: "Basic Shapes", OrderIndex: 1}).Error)

	w := env.request(t, http.MethodGet, "/api/lessons", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lessons []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lessons))
	require.Len(t, lessons, 2)
	assert.Equal(t, "Basic Shapes", lessons[0]["title"])
	assert.Equal(t, "Color Theory", lessons[1]["title"])
}

func TestGetLeaderboard(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.User{Username: "vera", Email: "v@example.com", TotalXP: 300, Level: 2}).Error)
	require.NoError(t, env.db.Create(&model.User{Username: "mila", Email: "m@example.com", TotalXP: 500, Level: 3}).Error)

	w := env.request(t, http.MethodGet, "/api/achievements/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "mila", entries[0]["username"])
	assert.EqualValues(t, 1, entries[0]["rank"])
}

func TestPreflightRequest(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/progress", nil)
	req.Header.Set("Origin", "https://artlearn.example")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type, X-User-Id", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodDelete, "/api/progress", nil)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Method not allowed", body["error"])
}
