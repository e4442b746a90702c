package respond

// ConnectionStateRespond 连接状态变更响应
// Status 为当前用户视角的关系标签
// 使用位置:
//   - internal/service/connection/service.go: SendRequest, Respond
type ConnectionStateRespond struct {
	ConnectionId string `json:"connection_id"`
	Status       string `json:"status"`
}
