package request

// ReportUserRequest 举报用户请求
// 使用位置:
//   - internal/handler/report_handler.go: ReportUser
//   - internal/service/report/service.go: ReportUser
type ReportUserRequest struct {
	TargetId string `json:"target_id" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=200"`
}
