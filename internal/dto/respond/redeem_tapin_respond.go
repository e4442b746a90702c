package respond

// RedeemTapInRespond 兑换贴卡令牌响应
// 使用位置:
//   - internal/service/tapin/service.go: Redeem
type RedeemTapInRespond struct {
	ConnectionId string `json:"connection_id"`
	PeerId       string `json:"peer_id"`
	PeerNickname string `json:"peer_nickname"`
}
