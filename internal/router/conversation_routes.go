package router

import (
	"campus_link_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerConversationRoutes 注册会话与消息相关路由
func (rt *Router) registerConversationRoutes(r *gin.Engine) {
	convGroup := r.Group("/conversation")
	convGroup.Use(middleware.JWTAuth())
	{
		convGroup.POST("/open", rt.handlers.Conversation.Open)
		convGroup.GET("/list", rt.handlers.Conversation.List)
	}

	msgGroup := r.Group("/message")
	msgGroup.Use(middleware.JWTAuth())
	{
		msgGroup.GET("/list", rt.handlers.Conversation.GetMessageList)
		msgGroup.POST("/send", rt.handlers.Conversation.SendMessage)
		msgGroup.POST("/markRead", rt.handlers.Conversation.MarkRead)
		msgGroup.POST("/delete", rt.handlers.Conversation.DeleteMessage)
	}
}
