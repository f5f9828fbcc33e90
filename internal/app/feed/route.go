package feed

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/posts/recent", handler.Recent)
	rg.GET("/posts/trending", handler.Trending)
	rg.GET("/posts/search", handler.Search)
	rg.GET("/boards/:slug", handler.BoardPage)
}
