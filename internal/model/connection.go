// Package model 定义数据库实体模型
// 本文件定义连接（好友关系）模型
package model

import (
	"gorm.io/gorm"
)

// Connection 连接模型
// 对应数据库 connection 表
// 一条记录代表一对用户之间的关系，任意无序对 {A,B} 至多存在一条记录，
// 由 pair_key 唯一索引兜底并发插入
type Connection struct {
	gorm.Model

	// Uuid 连接唯一标识
	// 格式：C + 日期前缀随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:连接唯一id"`

	// InitiatorId 发起方用户 UUID（发出好友申请的一方）
	InitiatorId string `gorm:"column:initiator_id;index;type:char(20);not null;comment:发起方uuid"`

	// TargetId 接收方用户 UUID（被申请的一方）
	TargetId string `gorm:"column:target_id;index;type:char(20);not null;comment:接收方uuid"`

	// PairKey 无序对规范哈希，唯一索引
	// 两个方向的并发插入会在此撞唯一约束，调用方捕获冲突后重读并走 tie-break
	PairKey string `gorm:"column:pair_key;uniqueIndex;type:char(64);not null;comment:无序对哈希"`

	// Status 关系状态，0.申请中，1.已通过，2.已拉黑
	// 参见 pkg/enum/connection/connection_status_enum
	Status int8 `gorm:"column:status;not null;comment:关系状态，0.申请中，1.已通过，2.已拉黑"`
}

// TableName 指定表名
func (Connection) TableName() string {
	return "connection"
}

// BeforeCreate GORM Hook：插入前补齐配对哈希
// 调用方只需设置 InitiatorId/TargetId，无需关心 PairKey 的计算
func (c *Connection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.PairKey == "" {
		c.PairKey = PairKey(c.InitiatorId, c.TargetId)
	}
	return nil
}

// Involves 判断指定用户是否为该连接的参与方
func (c *Connection) Involves(userId string) bool {
	return c.InitiatorId == userId || c.TargetId == userId
}

// OtherOf 返回相对指定用户的另一参与方
func (c *Connection) OtherOf(userId string) string {
	if c.InitiatorId == userId {
		return c.TargetId
	}
	return c.InitiatorId
}
