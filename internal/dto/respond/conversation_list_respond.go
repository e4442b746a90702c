package respond

// ConversationListRespond 会话列表响应单项
// 使用位置:
//   - internal/service/conversation/service.go: ListConversations
type ConversationListRespond struct {
	ConversationId string `json:"conversation_id"`
	PeerId         string `json:"peer_id"`
	PeerNickname   string `json:"peer_nickname"`
	PeerAvatar     string `json:"peer_avatar"`
	LastMessage    string `json:"last_message"`
	LastMessageAt  string `json:"last_message_at"`
	UnreadCount    int64  `json:"unread_count"`
}
