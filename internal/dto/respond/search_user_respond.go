package respond

// SearchUserRespond 搜索用户响应，带与当前用户的关系标注
// Relationship 取值: none / pending / incoming / accepted / blocked
// 使用位置:
//   - internal/service/connection/service.go: SearchWithRelationship
type SearchUserRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	Campus       string `json:"campus"`
	Major        string `json:"major"`
	Relationship string `json:"relationship"`
}
