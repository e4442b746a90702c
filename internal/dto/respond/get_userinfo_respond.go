package respond

// GetUserInfoRespond 获取用户信息响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo
type GetUserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Nickname  string `json:"nickname"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Campus    string `json:"campus"`
	Major     string `json:"major"`
	Signature string `json:"signature"`
	CreatedAt string `json:"created_at"`
	Status    int8   `json:"status"`
}
