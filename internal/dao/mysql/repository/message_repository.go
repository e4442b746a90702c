package repository

import (
	"time"

	"campus_link_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindByUuid 根据消息 UUID 查找，已删除的消息查不到
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.Where("uuid = ?", uuid).First(&msg).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &msg, nil
}

// FindByUuidUnscoped 根据消息 UUID 查找，包含已删除的消息
// 审计场景专用，普通读路径不要用
func (r *messageRepository) FindByUuidUnscoped(uuid int64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.Unscoped().Where("uuid = ?", uuid).First(&msg).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息(含已删除) uuid=%d", uuid)
	}
	return &msg, nil
}

// FindPage 按时间游标取一页消息，倒序返回
// 多取一条用来探测是否还有下一页，由调用方截断
// 同一毫秒内的消息以雪花 uuid 做次级排序，保证分页顺序稳定
func (r *messageRepository) FindPage(conversationId string, before time.Time, limit int) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.Where("conversation_id = ? AND created_at < ?", conversationId, before).
		Order("created_at DESC, uuid DESC").Limit(limit + 1).Find(&msgs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息分页 conversation_id=%s", conversationId)
	}
	return msgs, nil
}

// FindLatestByConversationIds 批量查找每个会话的最新消息
// 雪花 ID 按时间单调递增，取每组最大 uuid 就是最新一条
func (r *messageRepository) FindLatestByConversationIds(conversationIds []string) ([]model.Message, error) {
	if len(conversationIds) == 0 {
		return []model.Message{}, nil
	}
	var msgs []model.Message
	sub := r.db.Model(&model.Message{}).Select("MAX(uuid)").
		Where("conversation_id IN ?", conversationIds).
		Group("conversation_id")
	if err := r.db.Where("uuid IN (?)", sub).Find(&msgs).Error; err != nil {
		return nil, wrapDBError(err, "批量查询会话最新消息")
	}
	return msgs, nil
}

// CountUnreadGrouped 批量统计用户在各会话的未读数
func (r *messageRepository) CountUnreadGrouped(conversationIds []string, receiverId string) (map[string]int64, error) {
	if len(conversationIds) == 0 {
		return map[string]int64{}, nil
	}
	var rows []struct {
		ConversationId string
		Total          int64
	}
	if err := r.db.Model(&model.Message{}).
		Select("conversation_id, COUNT(*) AS total").
		Where("conversation_id IN ? AND receive_id = ? AND is_read = ?", conversationIds, receiverId, false).
		Group("conversation_id").Scan(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "统计未读消息 receive_id=%s", receiverId)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ConversationId] = row.Total
	}
	return counts, nil
}

// Create 创建消息记录
func (r *messageRepository) Create(msg *model.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return wrapDBError(err, "创建消息记录")
	}
	return nil
}

// MarkRead 把会话内发给 userId 的未读消息全部置为已读
// 没有匹配行时同样返回成功，重复调用是幂等的
func (r *messageRepository) MarkRead(conversationId, receiverId string) error {
	if err := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND receive_id = ? AND is_read = ?", conversationId, receiverId, false).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记已读 conversation_id=%s receive_id=%s", conversationId, receiverId)
	}
	return nil
}

// SoftDelete 软删除消息，记录保留用于审计
func (r *messageRepository) SoftDelete(uuid int64) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "删除消息 uuid=%d", uuid)
	}
	return nil
}
