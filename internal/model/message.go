// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储私聊消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 消息只做软删除：gorm.Model 内嵌的 DeletedAt 即删除时间戳，
// 常规查询自动排除已删除行，审计场景用 Unscoped 仍可见
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 雪花算法生成的 int64，按生成时间单调递增
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ConversationId 所属会话 UUID
	ConversationId string `gorm:"column:conversation_id;index;type:char(20);not null;comment:会话uuid"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiveId 接收者 UUID
	// 发送者与接收者必须都是所属会话的参与方
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息文本内容，1-1000 字符
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// IsRead 已读标记
	// 由接收方调用 markRead 批量置位
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
