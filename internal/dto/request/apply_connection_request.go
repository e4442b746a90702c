package request

// ApplyConnectionRequest 发起连接申请请求
// 使用位置:
//   - internal/handler/connection_handler.go: Apply
//   - internal/service/connection/service.go: SendRequest
type ApplyConnectionRequest struct {
	TargetId string `json:"target_id" binding:"required"`
}
