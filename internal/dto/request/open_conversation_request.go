package request

// OpenConversationRequest 打开会话请求
// 使用位置:
//   - internal/handler/conversation_handler.go: Open
//   - internal/service/conversation/service.go: Open
type OpenConversationRequest struct {
	PeerId string `json:"peer_id" binding:"required"`
}
