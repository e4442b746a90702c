package respond

// SendMessageRespond 发送消息响应
// 使用位置:
//   - internal/service/conversation/service.go: SendMessage
type SendMessageRespond struct {
	MessageId      int64  `json:"message_id,string"`
	ConversationId string `json:"conversation_id"`
	CreatedAt      string `json:"created_at"`
}
