package respond

// DeleteMessageRespond 删除消息响应
// 使用位置:
//   - internal/service/conversation/service.go: DeleteMessage
type DeleteMessageRespond struct {
	MessageId      int64  `json:"message_id,string"`
	ConversationId string `json:"conversation_id"`
}
