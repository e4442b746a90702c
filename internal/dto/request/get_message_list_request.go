package request

// GetMessageListRequest 获取消息分页请求
// Cursor 为上一页返回的毫秒时间戳游标，首页不传
// 使用位置:
//   - internal/handler/conversation_handler.go: GetMessageList
type GetMessageListRequest struct {
	ConversationId string `json:"conversation_id" form:"conversation_id" binding:"required"`
	Cursor         int64  `json:"cursor" form:"cursor"`
	Limit          int    `json:"limit" form:"limit"`
}
