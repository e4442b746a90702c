package repository

import (
	"campus_link_server/internal/model"

	"gorm.io/gorm"
)

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository 创建连接 Repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// FindByUuid 根据连接 UUID 查找
func (r *connectionRepository) FindByUuid(uuid string) (*model.Connection, error) {
	var conn model.Connection
	if err := r.db.Where("uuid = ?", uuid).First(&conn).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询连接 uuid=%s", uuid)
	}
	return &conn, nil
}

// FindByPair 按无序对查找
// 以配对哈希查询，等价于同时检查 (A,B) 和 (B,A) 两个方向
func (r *connectionRepository) FindByPair(userOneId, userTwoId string) (*model.Connection, error) {
	var conn model.Connection
	if err := r.db.Where("pair_key = ?", model.PairKey(userOneId, userTwoId)).First(&conn).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询连接 user1=%s user2=%s", userOneId, userTwoId)
	}
	return &conn, nil
}

// FindByUserId 查找用户参与的所有连接，按更新时间倒序
func (r *connectionRepository) FindByUserId(userId string) ([]model.Connection, error) {
	var conns []model.Connection
	if err := r.db.Where("initiator_id = ? OR target_id = ?", userId, userId).
		Order("updated_at DESC").Find(&conns).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询连接列表 user_id=%s", userId)
	}
	return conns, nil
}

// FindOutgoingToAny 批量查找 userId 发往候选集合的连接
// 搜索结果标注关系时使用，候选集合一次查完，不做逐个查询
func (r *connectionRepository) FindOutgoingToAny(userId string, candidateIds []string) ([]model.Connection, error) {
	if len(candidateIds) == 0 {
		return []model.Connection{}, nil
	}
	var conns []model.Connection
	if err := r.db.Where("initiator_id = ? AND target_id IN ?", userId, candidateIds).
		Find(&conns).Error; err != nil {
		return nil, wrapDBErrorf(err, "批量查询发出连接 user_id=%s", userId)
	}
	return conns, nil
}

// FindIncomingFromAny 批量查找候选集合发往 userId 的连接
func (r *connectionRepository) FindIncomingFromAny(userId string, candidateIds []string) ([]model.Connection, error) {
	if len(candidateIds) == 0 {
		return []model.Connection{}, nil
	}
	var conns []model.Connection
	if err := r.db.Where("target_id = ? AND initiator_id IN ?", userId, candidateIds).
		Find(&conns).Error; err != nil {
		return nil, wrapDBErrorf(err, "批量查询收到连接 user_id=%s", userId)
	}
	return conns, nil
}

// Create 创建连接记录
// pair_key 唯一索引兜底：并发双向插入时第二条会返回 CodeConflict
func (r *connectionRepository) Create(conn *model.Connection) error {
	if err := r.db.Create(conn).Error; err != nil {
		return wrapDBError(err, "创建连接记录")
	}
	return nil
}

// UpdateStatus 更新连接状态
func (r *connectionRepository) UpdateStatus(uuid string, status int8) error {
	if err := r.db.Model(&model.Connection{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新连接状态 uuid=%s", uuid)
	}
	return nil
}

// HardDelete 物理删除连接记录
// 拒绝申请/解除关系后这对用户要能重新从零开始，所以不做软删除，
// 否则 pair_key 唯一索引会挡住后续的新申请
func (r *connectionRepository) HardDelete(uuid string) error {
	if err := r.db.Unscoped().Where("uuid = ?", uuid).Delete(&model.Connection{}).Error; err != nil {
		return wrapDBErrorf(err, "删除连接记录 uuid=%s", uuid)
	}
	return nil
}

// HardDeleteByPair 物理删除无序对的连接记录，返回删除行数
func (r *connectionRepository) HardDeleteByPair(userOneId, userTwoId string) (int64, error) {
	result := r.db.Unscoped().Where("pair_key = ?", model.PairKey(userOneId, userTwoId)).
		Delete(&model.Connection{})
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "删除连接记录 user1=%s user2=%s", userOneId, userTwoId)
	}
	return result.RowsAffected, nil
}
