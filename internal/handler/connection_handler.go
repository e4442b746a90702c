// Package handler 提供 HTTP 请求处理器
// 本文件处理好友关系相关的 API 请求
package handler

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ConnectionHandler 连接请求处理器
type ConnectionHandler struct {
	connSvc service.ConnectionService
}

// NewConnectionHandler 创建连接处理器实例
func NewConnectionHandler(connSvc service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connSvc: connSvc}
}

// List 获取连接列表
// GET /connection/list?status=accepted
// status 可选，取值 pending/accepted/blocked，为空返回全部
// 响应: []respond.ConnectionListRespond
func (h *ConnectionHandler) List(c *gin.Context) {
	userId := c.GetString("user_id")
	data, err := h.connSvc.List(userId, c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Apply 发起连接申请
// POST /connection/apply
// 请求体: request.ApplyConnectionRequest
// 响应: respond.ConnectionStateRespond
func (h *ConnectionHandler) Apply(c *gin.Context) {
	var req request.ApplyConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.connSvc.SendRequest(userId, req.TargetId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Respond 处理连接申请（接受/拒绝/拉黑）
// POST /connection/respond
// 请求体: request.RespondConnectionRequest
// 响应: respond.ConnectionStateRespond
func (h *ConnectionHandler) Respond(c *gin.Context) {
	var req request.RespondConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.connSvc.Respond(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Remove 解除连接关系
// POST /connection/remove
// 请求体: request.RemoveConnectionRequest
// 响应: respond.RemoveConnectionRespond
func (h *ConnectionHandler) Remove(c *gin.Context) {
	var req request.RemoveConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.connSvc.Remove(userId, req.PeerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
