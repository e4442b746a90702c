package request

// RemoveConnectionRequest 解除连接关系请求
// 使用位置:
//   - internal/handler/connection_handler.go: Remove
//   - internal/service/connection/service.go: Remove
type RemoveConnectionRequest struct {
	PeerId string `json:"peer_id" binding:"required"`
}
