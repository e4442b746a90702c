package request

// DeleteMessageRequest 删除消息请求
// MessageId 以字符串传输，避免前端 JSON 解析丢失 int64 精度
// 使用位置:
//   - internal/handler/conversation_handler.go: DeleteMessage
type DeleteMessageRequest struct {
	MessageId int64 `json:"message_id,string" binding:"required"`
}
