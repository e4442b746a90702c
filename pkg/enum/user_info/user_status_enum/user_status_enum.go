// Package user_status_enum 定义用户账号状态
package user_status_enum

const (
	NORMAL  int8 = 0 // 正常
	DISABLE int8 = 1 // 禁用
)
