// Package connection_status_enum 定义连接（好友关系）记录的存储状态
package connection_status_enum

const (
	PENDING  int8 = 0 // 申请中，等待 target 处理
	ACCEPTED int8 = 1 // 双方已建立连接
	BLOCKED  int8 = 2 // 已拉黑，双方均无法再发起申请
)
