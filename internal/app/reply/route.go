package reply

import (
	"winntalks/internal/app/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, userSvc user.Service) {
	rg.POST("/posts/:uuid/replies", user.AuthRequired(userSvc), handler.CreateReply)
	rg.DELETE("/replies/:uuid", user.AuthRequired(userSvc), user.AdminRequired(), handler.RemoveReply)
}
