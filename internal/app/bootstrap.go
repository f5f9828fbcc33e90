package app

import (
	"winntalks/internal/app/board"
	"winntalks/internal/app/feed"
	"winntalks/internal/app/health"
	"winntalks/internal/app/post"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/report"
	"winntalks/internal/app/user"
	"winntalks/internal/config"
	"winntalks/internal/db"
	"winntalks/internal/db/seeder"
	"winntalks/internal/providers/redis"
	"winntalks/internal/router"
	"winntalks/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()
	go eventBus.Run()

	userRepo := user.NewRepository(dbConn)
	boardRepo := board.NewRepository(dbConn)
	postRepo := post.NewRepository(dbConn)
	replyRepo := reply.NewRepository(dbConn)
	reportRepo := report.NewRepository(dbConn)
	feedRepo := feed.NewRepository(dbConn)

	userService := user.NewService(userRepo, redisProvider, logger, cfg.SessionTTL, cfg.BcryptCost)
	boardService := board.NewService(boardRepo)
	replyService := reply.NewService(replyRepo, eventBus, logger)
	reportService := report.NewService(reportRepo, logger)
	postService := post.NewService(postRepo, boardService, replyService, reportService, eventBus, logger)
	feedService := feed.NewService(feedRepo, boardService, redisProvider, eventBus, logger, cfg.HotWindow, cfg.HotReplyWeight)

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	userHandler := user.NewHandler(userService)
	boardHandler := board.NewHandler(boardService)
	postHandler := post.NewHandler(postService)
	replyHandler := reply.NewHandler(replyService)
	reportHandler := report.NewHandler(reportService)
	feedHandler := feed.NewHandler(feedService, cfg.RecentLimit, cfg.TrendingLimit, cfg.SearchLimit, cfg.PageSize)

	r := router.NewRouter(logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterUserRoutes(userHandler, userService)
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterFeedRoutes(feedHandler)
	r.RegisterPostRoutes(postHandler, userService)
	r.RegisterReplyRoutes(replyHandler, userService)
	r.RegisterReportRoutes(reportHandler, userService)
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
