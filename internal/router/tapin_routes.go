package router

import (
	"campus_link_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerTapInRoutes 注册面对面贴卡相关路由
func (rt *Router) registerTapInRoutes(r *gin.Engine) {
	tapinGroup := r.Group("/tapin")
	tapinGroup.Use(middleware.JWTAuth())
	{
		tapinGroup.POST("/generate", rt.handlers.TapIn.Generate)
		tapinGroup.POST("/redeem", rt.handlers.TapIn.Redeem)
	}
}
