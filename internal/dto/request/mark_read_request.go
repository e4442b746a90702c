package request

// MarkReadRequest 标记会话已读请求
// 使用位置:
//   - internal/handler/conversation_handler.go: MarkRead
type MarkReadRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
}
