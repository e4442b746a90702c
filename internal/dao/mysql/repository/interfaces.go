// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"errors"
	"time"

	"campus_link_server/internal/model"
	"campus_link_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - ErrDuplicatedKey  -> CodeConflict（唯一索引冲突，调用方可据此走并发纠偏）
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrap(err, errorx.CodeConflict, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
// 功能同 wrapDBError，但支持 fmt.Sprintf 风格的格式化
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrapf(err, errorx.CodeConflict, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户的增删改查操作
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// SearchByNickname 按昵称模糊搜索通讯录（排除指定用户）
	SearchByNickname(keyword, excludeUuid string, limit int) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息
	Update(user *model.UserInfo) error
}

// ConnectionRepository 连接数据访问接口
// 管理用户之间的好友关系记录，一对用户至多一条记录
type ConnectionRepository interface {
	// FindByUuid 根据连接 UUID 查找
	FindByUuid(uuid string) (*model.Connection, error)
	// FindByPair 按无序对查找（两个方向都检查）
	FindByPair(userOneId, userTwoId string) (*model.Connection, error)
	// FindByUserId 查找用户参与的所有连接，按更新时间倒序
	FindByUserId(userId string) ([]model.Connection, error)
	// FindOutgoingToAny 批量查找 userId 发往候选集合的连接
	FindOutgoingToAny(userId string, candidateIds []string) ([]model.Connection, error)
	// FindIncomingFromAny 批量查找候选集合发往 userId 的连接
	FindIncomingFromAny(userId string, candidateIds []string) ([]model.Connection, error)
	// Create 创建连接记录（pair_key 唯一索引兜底并发）
	Create(conn *model.Connection) error
	// UpdateStatus 更新连接状态
	UpdateStatus(uuid string, status int8) error
	// HardDelete 物理删除连接记录（拒绝/解除关系后允许重新发起）
	HardDelete(uuid string) error
	// HardDeleteByPair 物理删除无序对的连接记录，返回删除行数
	HardDeleteByPair(userOneId, userTwoId string) (int64, error)
}

// ConversationRepository 会话数据访问接口
// 管理 1:1 私聊会话，无序对唯一
type ConversationRepository interface {
	// FindByUuid 根据会话 UUID 查找
	FindByUuid(uuid string) (*model.Conversation, error)
	// FindByPairKey 根据配对哈希查找
	FindByPairKey(pairKey string) (*model.Conversation, error)
	// FindByUserId 查找用户参与的所有会话，按最近消息倒序
	FindByUserId(userId string) ([]model.Conversation, error)
	// Upsert 以 pair_key 为冲突键插入或取回既有会话
	Upsert(conv *model.Conversation) (*model.Conversation, error)
	// UpdateLastMessage 更新会话的最新消息摘要与时间
	UpdateLastMessage(uuid string, preview string, at time.Time) error
}

// MessageRepository 消息数据访问接口
// 常规查询自动排除软删除行
type MessageRepository interface {
	// FindByUuid 根据消息雪花 ID 查找（不含已删除）
	FindByUuid(uuid int64) (*model.Message, error)
	// FindByUuidUnscoped 根据消息雪花 ID 查找（含已删除，供内部审计）
	FindByUuidUnscoped(uuid int64) (*model.Message, error)
	// FindPage 游标分页：取会话中 before 之前的消息，按创建时间倒序，最多 limit 条
	FindPage(conversationId string, before time.Time, limit int) ([]model.Message, error)
	// FindLatestByConversationIds 批量查找每个会话的最新一条消息
	FindLatestByConversationIds(conversationIds []string) ([]model.Message, error)
	// CountUnreadGrouped 批量统计每个会话中发给 receiverId 的未读条数
	CountUnreadGrouped(conversationIds []string, receiverId string) (map[string]int64, error)
	// Create 创建消息
	Create(message *model.Message) error
	// MarkRead 将会话中发给 receiverId 的未读消息批量置为已读
	MarkRead(conversationId, receiverId string) error
	// SoftDelete 软删除消息（设置删除时间戳，保留物理行）
	SoftDelete(uuid int64) error
}

// ReportRepository 举报记录数据访问接口
type ReportRepository interface {
	// Create 创建举报记录
	Create(report *model.Report) error
	// FindByReporterId 查找举报人的历史举报
	FindByReporterId(reporterId string) ([]model.Report, error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	User         UserRepository         // 用户 Repository
	Connection   ConnectionRepository   // 连接 Repository
	Conversation ConversationRepository // 会话 Repository
	Message      MessageRepository      // 消息 Repository
	Report       ReportRepository       // 举报 Repository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Connection:   NewConnectionRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
		Report:       NewReportRepository(db),
	}
}

// NewRepositoriesFrom 从既有实现组装聚合（测试注入内存实现时使用）
func NewRepositoriesFrom(user UserRepository, conn ConnectionRepository,
	conv ConversationRepository, msg MessageRepository, report ReportRepository) *Repositories {
	return &Repositories{
		User:         user,
		Connection:   conn,
		Conversation: conv,
		Message:      msg,
		Report:       report,
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 未绑定数据库时（测试注入内存实现）直接执行
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
