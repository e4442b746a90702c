// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"campus_link_server/internal/handler"
)

// Router 路由管理器
// 持有 Handler 聚合实例，通过依赖注入构造
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 http_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerAuthRoutes(r)         // 认证路由（注册/登录/刷新）
	rt.registerUserRoutes(r)         // 用户路由
	rt.registerConnectionRoutes(r)   // 连接路由
	rt.registerConversationRoutes(r) // 会话与消息路由
	rt.registerTapInRoutes(r)        // 贴卡路由
	rt.registerReportRoutes(r)       // 举报路由
}
