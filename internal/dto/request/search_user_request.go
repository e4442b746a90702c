package request

// SearchUserRequest 搜索用户请求
// 使用位置:
//   - internal/handler/user_handler.go: SearchUser
type SearchUserRequest struct {
	Keyword string `json:"keyword" form:"keyword" binding:"required,min=1"`
}
