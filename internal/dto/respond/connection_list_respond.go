package respond

// ConnectionListRespond 连接列表响应
// Relationship 为当前用户视角的关系状态，Direction 标注申请方向
// 使用位置:
//   - internal/service/connection/service.go: List
type ConnectionListRespond struct {
	ConnectionId string `json:"connection_id"`
	PeerId       string `json:"peer_id"`
	PeerNickname string `json:"peer_nickname"`
	PeerAvatar   string `json:"peer_avatar"`
	Relationship string `json:"relationship"`
	Direction    string `json:"direction"`
	UpdatedAt    string `json:"updated_at"`
}
