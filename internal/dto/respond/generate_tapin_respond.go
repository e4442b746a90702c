package respond

// GenerateTapInRespond 生成贴卡令牌响应
// ExpiresIn 为令牌剩余有效秒数
// 使用位置:
//   - internal/service/tapin/service.go: Generate
type GenerateTapInRespond struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
