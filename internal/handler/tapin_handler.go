// Package handler 提供 HTTP 请求处理器
// 本文件处理面对面贴卡相关的 API 请求
package handler

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/service"

	"github.com/gin-gonic/gin"
)

// TapInHandler 贴卡请求处理器
type TapInHandler struct {
	tapinSvc service.TapInService
}

// NewTapInHandler 创建贴卡处理器实例
func NewTapInHandler(tapinSvc service.TapInService) *TapInHandler {
	return &TapInHandler{tapinSvc: tapinSvc}
}

// Generate 生成贴卡令牌
// POST /tapin/generate
// 响应: respond.GenerateTapInRespond
func (h *TapInHandler) Generate(c *gin.Context) {
	userId := c.GetString("user_id")
	data, err := h.tapinSvc.Generate(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Redeem 兑换贴卡令牌
// POST /tapin/redeem
// 请求体: request.RedeemTapInRequest
// 响应: respond.RedeemTapInRespond
func (h *TapInHandler) Redeem(c *gin.Context) {
	var req request.RedeemTapInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.tapinSvc.Redeem(userId, req.Token)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
