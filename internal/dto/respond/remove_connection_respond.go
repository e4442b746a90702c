package respond

// RemoveConnectionRespond 解除连接响应
// Removed 为 false 表示本来就没有任何关系记录
// 使用位置:
//   - internal/service/connection/service.go: Remove
type RemoveConnectionRespond struct {
	Removed bool `json:"removed"`
}
