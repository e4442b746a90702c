// Package handler 提供 HTTP 请求处理器
// 本文件处理用户资料与通讯录搜索相关的 API 请求
package handler

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
// 搜索接口需要标注关系，所以额外注入 ConnectionService
type UserHandler struct {
	userSvc service.UserService
	connSvc service.ConnectionService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService, connSvc service.ConnectionService) *UserHandler {
	return &UserHandler{userSvc: userSvc, connSvc: connSvc}
}

// GetUserInfo 获取用户信息
// GET /user/info?uuid=xxx
// uuid 为空时返回当前登录用户自己的信息
// 响应: respond.GetUserInfoRespond
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	uuid := c.Query("uuid")
	if uuid == "" {
		uuid = c.GetString("user_id")
	}
	data, err := h.userSvc.GetUserInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserInfo 修改当前用户资料
// POST /user/update
// 请求体: request.UpdateUserInfoRequest
// 响应: nil
func (h *UserHandler) UpdateUserInfo(c *gin.Context) {
	var req request.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	if err := h.userSvc.UpdateUserInfo(userId, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SearchUser 按昵称搜索用户
// GET /user/search?keyword=xxx
// 结果标注与当前用户的关系标签
// 响应: []respond.SearchUserRespond
func (h *UserHandler) SearchUser(c *gin.Context) {
	var req request.SearchUserRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.connSvc.SearchWithRelationship(userId, req.Keyword)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
