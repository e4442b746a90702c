package router

import (
	"campus_link_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerUserRoutes 注册用户相关路由
func (rt *Router) registerUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/info", rt.handlers.User.GetUserInfo)
		userGroup.POST("/update", rt.handlers.User.UpdateUserInfo)
		userGroup.GET("/search", rt.handlers.User.SearchUser)
	}
}
