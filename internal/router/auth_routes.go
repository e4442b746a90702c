// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由，均为公开接口
package router

import (
	"github.com/gin-gonic/gin"
)

// registerAuthRoutes 注册认证相关路由
func (rt *Router) registerAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/register - 用户注册
		authGroup.POST("/register", rt.handlers.Auth.Register)
		// POST /auth/login - 密码登录
		authGroup.POST("/login", rt.handlers.Auth.Login)
		// POST /auth/refresh - 用 Refresh Token 换取新的双 Token
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
	}
}
