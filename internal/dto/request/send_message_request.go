package request

// SendMessageRequest 发送消息请求
// 按对端用户寻址，会话由服务端幂等补齐
// 使用位置:
//   - internal/handler/conversation_handler.go: SendMessage
//   - internal/service/conversation/service.go: SendMessage
type SendMessageRequest struct {
	PeerId  string `json:"peer_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}
