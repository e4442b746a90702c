package router

import (
	"campus_link_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerConnectionRoutes 注册连接（好友关系）相关路由
func (rt *Router) registerConnectionRoutes(r *gin.Engine) {
	connGroup := r.Group("/connection")
	connGroup.Use(middleware.JWTAuth())
	{
		connGroup.GET("/list", rt.handlers.Connection.List)
		connGroup.POST("/apply", rt.handlers.Connection.Apply)
		connGroup.POST("/respond", rt.handlers.Connection.Respond)
		connGroup.POST("/remove", rt.handlers.Connection.Remove)
	}
}
