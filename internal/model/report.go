// Package model 定义数据库实体模型
// 本文件定义举报记录模型
package model

import (
	"gorm.io/gorm"
)

// Report 举报记录模型
// 对应数据库 report 表，仅做留存供人工审核，冷却逻辑在 Redis 中控制
type Report struct {
	gorm.Model

	// Uuid 举报记录唯一标识
	// 格式：R + 日期前缀随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:举报唯一id"`

	// ReporterId 举报人 UUID
	ReporterId string `gorm:"column:reporter_id;index;type:char(20);not null;comment:举报人uuid"`

	// TargetId 被举报用户 UUID
	TargetId string `gorm:"column:target_id;index;type:char(20);not null;comment:被举报人uuid"`

	// Reason 举报理由
	Reason string `gorm:"column:reason;type:varchar(200);not null;comment:举报理由"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "report"
}
