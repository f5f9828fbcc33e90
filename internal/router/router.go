package router

import (
	"winntalks/internal/app/board"
	"winntalks/internal/app/feed"
	"winntalks/internal/app/health"
	"winntalks/internal/app/post"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/report"
	"winntalks/internal/app/user"
	"winntalks/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(logger *zap.Logger) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterUserRoutes(handler user.Handler, svc user.Service) {
	user.RegisterRoutes(r.Engine.Group("/api"), handler, svc)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterFeedRoutes(handler feed.Handler) {
	feed.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterPostRoutes(handler post.Handler, userSvc user.Service) {
	post.RegisterRoutes(r.Engine.Group("/api"), handler, userSvc)
}

func (r *Router) RegisterReplyRoutes(handler reply.Handler, userSvc user.Service) {
	reply.RegisterRoutes(r.Engine.Group("/api"), handler, userSvc)
}

func (r *Router) RegisterReportRoutes(handler report.Handler, userSvc user.Service) {
	report.RegisterRoutes(r.Engine.Group("/api"), handler, userSvc)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
