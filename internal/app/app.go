package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artlearn_backend/internal/config"
	"artlearn_backend/internal/controller"
	"artlearn_backend/internal/repository"
	"artlearn_backend/internal/service"
	"artlearn_backend/pkg/configwatcher"
	"artlearn_backend/pkg/database"
	"artlearn_backend/pkg/logger"
	"artlearn_backend/pkg/monitoring"
	"artlearn_backend/pkg/security"
	"artlearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	lesson      *repository.LessonRepository
	exercise    *repository.ExerciseRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	artwork     *repository.ArtworkRepository
}

type services struct {
	reward      *service.RewardService
	achievement *service.AchievementService
	lesson      *service.LessonService
	exercise    *service.ExerciseService
	user        *service.UserService
	gallery     *service.GalleryService
	storage     *service.StorageService
}

type controllers struct {
	progress    *controller.ProgressController
	exercise    *controller.ExerciseController
	lesson      *controller.LessonController
	user        *controller.UserController
	gallery     *controller.GalleryController
	achievement *controller.AchievementController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		lesson:      repository.NewLessonRepository(db),
		exercise:    repository.NewExerciseRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		artwork:     repository.NewArtworkRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.reward = service.NewRewardService(db, cfg.Reward)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, rdb)
	s.lesson = service.NewLessonService(repos.lesson, rdb)
	s.exercise = service.NewExerciseService(repos.exercise)
	s.user = service.NewUserService(repos.user, repos.progress)
	s.gallery = service.NewGalleryService(repos.artwork, s.storage)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		progress:    controller.NewProgressController(s.reward, s.achievement, repos.progress),
		exercise:    controller.NewExerciseController(s.exercise, s.reward),
		lesson:      controller.NewLessonController(s.lesson),
		user:        controller.NewUserController(s.user),
		gallery:     controller.NewGalleryController(s.gallery),
		achievement: controller.NewAchievementController(s.achievement),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS())
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only backs caches; run without it rather than refuse to start.
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("artlearn-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.reward.SetPolicy(newCfg.Reward)
		logger.Log.Info("Config reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
