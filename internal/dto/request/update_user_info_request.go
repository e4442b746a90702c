package request

// UpdateUserInfoRequest 更新用户资料请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateUserInfo
type UpdateUserInfoRequest struct {
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Campus    string `json:"campus"`
	Major     string `json:"major"`
	Signature string `json:"signature"`
	Email     string `json:"email" binding:"omitempty,email"`
}
