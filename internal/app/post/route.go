package post

import (
	"winntalks/internal/app/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, userSvc user.Service) {
	posts := rg.Group("/posts")
	{
		posts.GET("/:uuid", user.AuthOptional(userSvc), handler.GetPostByUUID)
		posts.POST("", user.AuthRequired(userSvc), handler.CreatePost)
		posts.POST("/:uuid/vote", user.AuthRequired(userSvc), handler.CastVote)
		posts.POST("/:uuid/report", user.AuthOptional(userSvc), handler.ReportPost)

		admin := posts.Group("", user.AuthRequired(userSvc), user.AdminRequired())
		{
			admin.DELETE("/:uuid", handler.RemovePost)
			admin.POST("/:uuid/pin", handler.PinPost)
			admin.POST("/:uuid/lock", handler.LockPost)
		}
	}
}
