// Package model 定义数据库实体模型
// 本文件定义会话模型，一个会话对应一对用户之间唯一的私聊线程
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Conversation 会话模型
// 对应数据库 conversation 表
// 参与者按字典序落库（ParticipantA < ParticipantB），pair_key 唯一索引保证
// 任意无序对只产生一条会话记录；会话只增不删
type Conversation struct {
	gorm.Model

	// Uuid 会话唯一标识
	// 格式：S + 日期前缀随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:会话唯一id"`

	// ParticipantA 参与者（字典序较小的一方）
	ParticipantA string `gorm:"column:participant_a;index;type:char(20);not null;comment:参与者A"`

	// ParticipantB 参与者（字典序较大的一方）
	ParticipantB string `gorm:"column:participant_b;index;type:char(20);not null;comment:参与者B"`

	// PairKey 参与者无序对的规范哈希，唯一索引
	// upsert 以此列为冲突键，两个调用顺序收敛到同一行
	PairKey string `gorm:"column:pair_key;uniqueIndex;type:char(64);not null;comment:无序对哈希"`

	// LastMessage 最新消息内容摘要，用于会话列表展示
	LastMessage string `gorm:"column:last_message;type:TEXT;comment:最新的消息"`

	// LastMessageAt 最后消息时间，用于会话列表排序
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;type:datetime;comment:最近消息时间"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversation"
}

// BeforeCreate GORM Hook：插入前规范化参与者顺序并补齐配对哈希
func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	c.ParticipantA, c.ParticipantB = CanonicalPair(c.ParticipantA, c.ParticipantB)
	if c.PairKey == "" {
		c.PairKey = PairKey(c.ParticipantA, c.ParticipantB)
	}
	return nil
}

// HasParticipant 判断指定用户是否为会话成员
func (c *Conversation) HasParticipant(userId string) bool {
	return c.ParticipantA == userId || c.ParticipantB == userId
}

// OtherOf 返回相对指定用户的另一位会话成员
func (c *Conversation) OtherOf(userId string) string {
	if c.ParticipantA == userId {
		return c.ParticipantB
	}
	return c.ParticipantA
}
