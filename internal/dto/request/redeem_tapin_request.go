package request

// RedeemTapInRequest 兑换贴卡令牌请求
// 使用位置:
//   - internal/handler/tapin_handler.go: Redeem
//   - internal/service/tapin/service.go: Redeem
type RedeemTapInRequest struct {
	Token string `json:"token" binding:"required"`
}
