package repository

import (
	"time"

	"campus_link_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话 Repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindByUuid 根据会话 UUID 查找
func (r *conversationRepository) FindByUuid(uuid string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.Where("uuid = ?", uuid).First(&conv).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &conv, nil
}

// FindByPairKey 按配对哈希查找会话
func (r *conversationRepository) FindByPairKey(pairKey string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.Where("pair_key = ?", pairKey).First(&conv).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 pair_key=%s", pairKey)
	}
	return &conv, nil
}

// FindByUserId 查找用户参与的所有会话
// 有消息的按最后消息时间倒序，没消息的按更新时间兜底
func (r *conversationRepository) FindByUserId(userId string) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := r.db.Where("participant_a = ? OR participant_b = ?", userId, userId).
		Order("COALESCE(last_message_at, updated_at) DESC").Find(&convs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话列表 user_id=%s", userId)
	}
	return convs, nil
}

// Upsert 幂等创建会话
// 并发打开同一会话时靠 pair_key 唯一索引去重：插入被跳过则回读已有行，
// 两边拿到的永远是同一条记录
func (r *conversationRepository) Upsert(conv *model.Conversation) (*model.Conversation, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(conv)
	if result.Error != nil {
		return nil, wrapDBError(result.Error, "创建会话记录")
	}
	if result.RowsAffected == 0 {
		return r.FindByPairKey(model.PairKey(conv.ParticipantA, conv.ParticipantB))
	}
	return conv, nil
}

// UpdateLastMessage 更新会话的最后消息预览
func (r *conversationRepository) UpdateLastMessage(uuid string, preview string, at time.Time) error {
	if err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"last_message":    preview,
			"last_message_at": at,
		}).Error; err != nil {
		return wrapDBErrorf(err, "更新会话最后消息 uuid=%s", uuid)
	}
	return nil
}
