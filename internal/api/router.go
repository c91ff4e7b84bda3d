package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/videotube/videotube-api/internal/api/handler"
	"github.com/videotube/videotube-api/internal/api/middleware"
	"github.com/videotube/videotube-api/internal/core/service"
	"github.com/videotube/videotube-api/internal/infrastructure/config"
	mongodb "github.com/videotube/videotube-api/internal/infrastructure/db/mongo"
	redisdb "github.com/videotube/videotube-api/internal/infrastructure/db/redis"
	"github.com/videotube/videotube-api/internal/infrastructure/media"
	"github.com/videotube/videotube-api/internal/infrastructure/queue"
)

// Deps bundles the externally constructed collaborators.
type Deps struct {
	DB    *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and
// returns it alongside the view dispatcher (the caller starts it).
func NewRouter(cfg *config.Config, deps Deps) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Large enough for multipart video uploads.
	e.Use(echomiddleware.BodyLimit("256M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("videotube"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	videoRepo := mongodb.NewVideoRepository(deps.DB)
	subRepo := mongodb.NewSubscriptionRepository(deps.DB)
	profileRepo := mongodb.NewProfileRepository(deps.DB)
	viewDedup := redisdb.NewViewDedup(deps.Redis)

	mediaStore := media.NewClient(media.Config{
		UploadURL:    cfg.Media.UploadURL,
		DestroyURL:   cfg.Media.DestroyURL,
		UploadPreset: cfg.Media.UploadPreset,
	})

	// --- Services ---
	tokenService := service.NewTokenService(
		cfg.Tokens.AccessSecret, cfg.Tokens.RefreshSecret,
		cfg.Tokens.AccessTTL, cfg.Tokens.RefreshTTL,
	)
	authService := service.NewAuthService(userRepo, tokenService, mediaStore)
	userService := service.NewUserService(userRepo, mediaStore, deps.Log)
	profileService := service.NewProfileService(profileRepo)
	videoService := service.NewVideoService(videoRepo, mediaStore, deps.Log)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	historyService := service.NewHistoryService(userRepo, videoRepo, viewDedup, deps.Log)

	dispatcher := queue.NewDispatcher(0, historyService, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	videoHandler := handler.NewVideoHandler(videoService, dispatcher)
	subHandler := handler.NewSubscriptionHandler(subService)

	authRequired := middleware.Auth(tokenService, userRepo)
	authOptional := middleware.OptionalAuth(tokenService, userRepo)

	v1 := e.Group("/api/v1")

	// --- User / session routes ---
	users := v1.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/refresh-token", authHandler.Refresh)
	users.POST("/logout", authHandler.Logout, authRequired)
	users.POST("/change-password", authHandler.ChangePassword, authRequired)
	users.GET("/current-user", authHandler.CurrentUser, authRequired)
	users.PATCH("/update-account", userHandler.UpdateAccount, authRequired)
	users.PATCH("/avatar", userHandler.UpdateAvatar, authRequired)
	users.PATCH("/cover-image", userHandler.UpdateCoverImage, authRequired)
	users.GET("/c/:username", profileHandler.ChannelProfile, authOptional)
	users.GET("/watch-history", profileHandler.WatchHistory, authRequired)

	// --- Video routes ---
	videos := v1.Group("/videos", authRequired)
	videos.POST("", videoHandler.Publish)
	videos.GET("", videoHandler.ListMine)
	videos.GET("/:videoID", videoHandler.Get)
	videos.DELETE("/:videoID", videoHandler.Delete)
	videos.PATCH("/toggle/publish/:videoID", videoHandler.TogglePublish)
	videos.POST("/:videoID/view", videoHandler.RecordView)

	// --- Subscription routes ---
	v1.POST("/subscriptions/c/:channelID", subHandler.Toggle, authRequired)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
