package router

import (
	"campus_link_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerReportRoutes 注册举报相关路由
func (rt *Router) registerReportRoutes(r *gin.Engine) {
	reportGroup := r.Group("/report")
	reportGroup.Use(middleware.JWTAuth())
	{
		reportGroup.POST("/user", rt.handlers.Report.ReportUser)
	}
}
