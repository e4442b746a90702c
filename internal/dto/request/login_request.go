package request

// LoginRequest 用户密码登录请求
// 使用位置:
//   - internal/handler/auth_handler.go: Login
//   - internal/service/user/service.go: Login
type LoginRequest struct {
	Telephone string `json:"telephone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}
