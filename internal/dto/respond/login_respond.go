package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Telephone    string `json:"telephone"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Campus       string `json:"campus"`
	Major        string `json:"major"`
	Signature    string `json:"signature"`
	CreatedAt    string `json:"created_at"`
	Status       int8   `json:"status"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
