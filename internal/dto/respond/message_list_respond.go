package respond

// MessageRespond 单条消息
// MessageId 以字符串序列化，避免前端 JSON 解析丢失 int64 精度
type MessageRespond struct {
	MessageId int64  `json:"message_id,string"`
	SendId    string `json:"send_id"`
	ReceiveId string `json:"receive_id"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// MessageListRespond 消息分页响应
// NextCursor 为 0 表示没有更早的消息了
// 使用位置:
//   - internal/service/conversation/service.go: GetMessages
type MessageListRespond struct {
	Messages   []MessageRespond `json:"messages"`
	NextCursor int64            `json:"next_cursor"`
	HasMore    bool             `json:"has_more"`
}
