package report

import (
	"winntalks/internal/app/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, userSvc user.Service) {
	reports := rg.Group("/reports", user.AuthRequired(userSvc), user.AdminRequired())
	{
		reports.GET("", handler.ListReports)
		reports.POST("/:id/resolve", handler.ResolveReport)
	}
}
