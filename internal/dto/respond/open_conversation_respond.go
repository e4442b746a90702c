package respond

// OpenConversationRespond 打开会话响应
// 使用位置:
//   - internal/service/conversation/service.go: Open
type OpenConversationRespond struct {
	ConversationId string `json:"conversation_id"`
	PeerId         string `json:"peer_id"`
}
