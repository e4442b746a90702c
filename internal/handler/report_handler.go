// Package handler 提供 HTTP 请求处理器
// 本文件处理用户举报相关的 API 请求
package handler

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 举报请求处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建举报处理器实例
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ReportUser 举报用户
// POST /report/user
// 请求体: request.ReportUserRequest
// 响应: nil
func (h *ReportHandler) ReportUser(c *gin.Context) {
	var req request.ReportUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	if err := h.reportSvc.ReportUser(userId, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
