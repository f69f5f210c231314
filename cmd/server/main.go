package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/wayandway/moneylog-backend/docs"
	"github.com/wayandway/moneylog-backend/internal/auth"
	"github.com/wayandway/moneylog-backend/internal/cache"
	"github.com/wayandway/moneylog-backend/internal/config"
	"github.com/wayandway/moneylog-backend/internal/db"
	"github.com/wayandway/moneylog-backend/internal/handler"
	"github.com/wayandway/moneylog-backend/internal/logger"
	"github.com/wayandway/moneylog-backend/internal/mailer"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
	"github.com/wayandway/moneylog-backend/internal/router"
	"github.com/wayandway/moneylog-backend/internal/service"
)

// @title MoneyLog API
// @version 1.0
// @description Blogging platform API with email-verified registration, JWT login, posts with unique slugs, tags and comments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, flush := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, File: cfg.LogFile})
	defer flush()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	var mailSender mailer.Sender
	if cfg.SMTPHost != "" {
		mailSender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		log.Warn("SMTP_HOST not set, verification mails are logged instead of sent")
		mailSender = mailer.NewLogSender(log)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailSender, cfg.PublicBaseURL)
	userService := service.NewUserService(userRepo, cacheClient)
	tagService := service.NewTagService(tagRepo)
	postService := service.NewPostService(postRepo, userRepo, tagService, log)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	tagHandler := handler.NewTagHandler(tagService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		userHandler,
		postHandler,
		tagHandler,
		commentHandler,
	)

	log.Info("swagger documentation", zap.String("url", cfg.PublicBaseURL+"/swagger/index.html"))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}

// requestLogger bridges echo's request logging into zap.
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
			} else {
				log.Info("request", fields...)
			}
			return nil
		},
	})
}
