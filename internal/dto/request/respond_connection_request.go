package request

// RespondConnectionRequest 处理连接申请请求
// Action 取值: accept / decline / block
// 使用位置:
//   - internal/handler/connection_handler.go: Respond
//   - internal/service/connection/service.go: Respond
type RespondConnectionRequest struct {
	ConnectionId string `json:"connection_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=accept decline block"`
}
