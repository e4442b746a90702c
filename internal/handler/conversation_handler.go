// Package handler 提供 HTTP 请求处理器
// 本文件处理会话与消息相关的 API 请求
package handler

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 会话请求处理器
type ConversationHandler struct {
	convSvc service.ConversationService
}

// NewConversationHandler 创建会话处理器实例
func NewConversationHandler(convSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convSvc: convSvc}
}

// Open 打开（或创建）与对端的会话
// POST /conversation/open
// 请求体: request.OpenConversationRequest
// 响应: respond.OpenConversationRespond
func (h *ConversationHandler) Open(c *gin.Context) {
	var req request.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.convSvc.Open(userId, req.PeerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// List 获取会话列表
// GET /conversation/list
// 响应: []respond.ConversationListRespond
func (h *ConversationHandler) List(c *gin.Context) {
	userId := c.GetString("user_id")
	data, err := h.convSvc.ListConversations(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMessageList 游标分页拉取消息
// GET /message/list?conversation_id=xxx&cursor=xxx&limit=50
// 响应: respond.MessageListRespond
func (h *ConversationHandler) GetMessageList(c *gin.Context) {
	var req request.GetMessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.convSvc.GetMessages(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendMessage 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.SendMessageRespond
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.convSvc.SendMessage(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记会话已读
// POST /message/markRead
// 请求体: request.MarkReadRequest
// 响应: nil
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	if err := h.convSvc.MarkRead(userId, req.ConversationId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteMessage 删除（软删除）消息
// POST /message/delete
// 请求体: request.DeleteMessageRequest
// 响应: respond.DeleteMessageRespond
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	var req request.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.convSvc.DeleteMessage(userId, req.MessageId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
