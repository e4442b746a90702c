// Package testfakes 提供 Repository 与缓存接口的内存实现
// 供各 Service 包的单元测试注入，行为对齐 MySQL/Redis 实现的约定：
// 查不到返回 CodeNotFound，撞配对唯一索引返回 CodeConflict
package testfakes

import (
	"sort"
	"strings"
	"sync"
	"time"

	"campus_link_server/internal/model"
	"campus_link_server/pkg/errorx"
)

// ==================== 用户 ====================

// UserRepo 用户仓储的内存实现
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*model.UserInfo
}

// NewUserRepo 创建空的用户仓储
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*model.UserInfo)}
}

func (r *UserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uuid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}

func (r *UserRepo) FindByTelephone(telephone string) (*model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Telephone == telephone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}

func (r *UserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]model.UserInfo, 0, len(uuids))
	for _, id := range uuids {
		if u, ok := r.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *UserRepo) SearchByNickname(keyword, excludeUuid string, limit int) ([]model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.UserInfo
	for _, u := range r.users {
		if u.Uuid == excludeUuid {
			continue
		}
		if strings.Contains(u.Nickname, keyword) {
			result = append(result, *u)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *UserRepo) Create(user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	// 模拟 BeforeSave Hook：明文密码哈希后入库
	if err := user.BeforeSave(nil); err != nil {
		return errorx.Wrap(err, errorx.CodeDBError, "hash password failed")
	}
	cp := *user
	r.users[user.Uuid] = &cp
	return nil
}

func (r *UserRepo) Update(user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := user.BeforeSave(nil); err != nil {
		return errorx.Wrap(err, errorx.CodeDBError, "hash password failed")
	}
	cp := *user
	r.users[user.Uuid] = &cp
	return nil
}

// ==================== 连接 ====================

// ConnectionRepo 连接仓储的内存实现
// 以配对哈希做唯一约束，复刻数据库唯一索引的并发兜底语义
type ConnectionRepo struct {
	mu    sync.Mutex
	conns []*model.Connection
}

// NewConnectionRepo 创建空的连接仓储
func NewConnectionRepo() *ConnectionRepo {
	return &ConnectionRepo{}
}

func (r *ConnectionRepo) FindByUuid(uuid string) (*model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.Uuid == uuid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "connection not found")
}

func (r *ConnectionRepo) FindByPair(userOneId, userTwoId string) (*model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := model.PairKey(userOneId, userTwoId)
	for _, c := range r.conns {
		if c.PairKey == key {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "connection not found")
}

func (r *ConnectionRepo) FindByUserId(userId string) ([]model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Connection
	for _, c := range r.conns {
		if c.InitiatorId == userId || c.TargetId == userId {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (r *ConnectionRepo) FindOutgoingToAny(userId string, candidateIds []string) ([]model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := toSet(candidateIds)
	var result []model.Connection
	for _, c := range r.conns {
		if c.InitiatorId == userId && want[c.TargetId] {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *ConnectionRepo) FindIncomingFromAny(userId string, candidateIds []string) ([]model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := toSet(candidateIds)
	var result []model.Connection
	for _, c := range r.conns {
		if c.TargetId == userId && want[c.InitiatorId] {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *ConnectionRepo) Create(conn *model.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// 模拟 BeforeCreate Hook 补齐配对哈希
	if conn.PairKey == "" {
		conn.PairKey = model.PairKey(conn.InitiatorId, conn.TargetId)
	}
	for _, c := range r.conns {
		if c.PairKey == conn.PairKey {
			return errorx.New(errorx.CodeConflict, "duplicated pair key")
		}
	}
	now := time.Now()
	conn.CreatedAt = now
	conn.UpdatedAt = now
	cp := *conn
	r.conns = append(r.conns, &cp)
	return nil
}

func (r *ConnectionRepo) UpdateStatus(uuid string, status int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.Uuid == uuid {
			c.Status = status
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *ConnectionRepo) HardDelete(uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.conns {
		if c.Uuid == uuid {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *ConnectionRepo) HardDeleteByPair(userOneId, userTwoId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := model.PairKey(userOneId, userTwoId)
	var deleted int64
	kept := r.conns[:0]
	for _, c := range r.conns {
		if c.PairKey == key {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.conns = kept
	return deleted, nil
}

// Count 当前记录总数，供测试断言
func (r *ConnectionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// ==================== 会话 ====================

// ConversationRepo 会话仓储的内存实现
type ConversationRepo struct {
	mu    sync.Mutex
	convs []*model.Conversation
}

// NewConversationRepo 创建空的会话仓储
func NewConversationRepo() *ConversationRepo {
	return &ConversationRepo{}
}

func (r *ConversationRepo) FindByUuid(uuid string) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.Uuid == uuid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "conversation not found")
}

func (r *ConversationRepo) FindByPairKey(pairKey string) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.PairKey == pairKey {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "conversation not found")
}

func (r *ConversationRepo) FindByUserId(userId string) ([]model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Conversation
	for _, c := range r.convs {
		if c.ParticipantA == userId || c.ParticipantB == userId {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := result[i].UpdatedAt, result[j].UpdatedAt
		if result[i].LastMessageAt.Valid {
			ti = result[i].LastMessageAt.Time
		}
		if result[j].LastMessageAt.Valid {
			tj = result[j].LastMessageAt.Time
		}
		return ti.After(tj)
	})
	return result, nil
}

func (r *ConversationRepo) Upsert(conv *model.Conversation) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// 模拟 BeforeCreate Hook：规范化参与者顺序并补齐配对哈希
	conv.ParticipantA, conv.ParticipantB = model.CanonicalPair(conv.ParticipantA, conv.ParticipantB)
	if conv.PairKey == "" {
		conv.PairKey = model.PairKey(conv.ParticipantA, conv.ParticipantB)
	}
	for _, c := range r.convs {
		if c.PairKey == conv.PairKey {
			cp := *c
			return &cp, nil
		}
	}
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	cp := *conv
	r.convs = append(r.convs, &cp)
	result := cp
	return &result, nil
}

func (r *ConversationRepo) UpdateLastMessage(uuid string, preview string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.Uuid == uuid {
			c.LastMessage = preview
			c.LastMessageAt.Time = at
			c.LastMessageAt.Valid = true
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

// ==================== 消息 ====================

// MessageRepo 消息仓储的内存实现
// DeletedAt 有值即视为软删除，常规查询过滤掉
type MessageRepo struct {
	mu   sync.Mutex
	msgs []*model.Message
}

// NewMessageRepo 创建空的消息仓储
func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

func (r *MessageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.Uuid == uuid && !m.DeletedAt.Valid {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "message not found")
}

func (r *MessageRepo) FindByUuidUnscoped(uuid int64) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.Uuid == uuid {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "message not found")
}

func (r *MessageRepo) FindPage(conversationId string, before time.Time, limit int) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Message
	for _, m := range r.msgs {
		if m.ConversationId == conversationId && !m.DeletedAt.Valid && m.CreatedAt.Before(before) {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Uuid > result[j].Uuid
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit+1 {
		result = result[:limit+1]
	}
	return result, nil
}

func (r *MessageRepo) FindLatestByConversationIds(conversationIds []string) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := toSet(conversationIds)
	latest := make(map[string]*model.Message)
	for _, m := range r.msgs {
		if !want[m.ConversationId] || m.DeletedAt.Valid {
			continue
		}
		if cur, ok := latest[m.ConversationId]; !ok || m.Uuid > cur.Uuid {
			latest[m.ConversationId] = m
		}
	}
	result := make([]model.Message, 0, len(latest))
	for _, m := range latest {
		result = append(result, *m)
	}
	return result, nil
}

func (r *MessageRepo) CountUnreadGrouped(conversationIds []string, receiverId string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := toSet(conversationIds)
	counts := make(map[string]int64)
	for _, m := range r.msgs {
		if want[m.ConversationId] && !m.DeletedAt.Valid && m.ReceiveId == receiverId && !m.IsRead {
			counts[m.ConversationId]++
		}
	}
	return counts, nil
}

func (r *MessageRepo) Create(message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// 测试可预置 CreatedAt 控制分页时间轴
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	cp := *message
	r.msgs = append(r.msgs, &cp)
	return nil
}

func (r *MessageRepo) MarkRead(conversationId, receiverId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ConversationId == conversationId && m.ReceiveId == receiverId && !m.DeletedAt.Valid {
			m.IsRead = true
		}
	}
	return nil
}

func (r *MessageRepo) SoftDelete(uuid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.Uuid == uuid && !m.DeletedAt.Valid {
			m.DeletedAt.Time = time.Now()
			m.DeletedAt.Valid = true
		}
	}
	return nil
}

// ==================== 举报 ====================

// ReportRepo 举报仓储的内存实现
type ReportRepo struct {
	mu      sync.Mutex
	reports []*model.Report
}

// NewReportRepo 创建空的举报仓储
func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

func (r *ReportRepo) Create(report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	cp := *report
	r.reports = append(r.reports, &cp)
	return nil
}

func (r *ReportRepo) FindByReporterId(reporterId string) ([]model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Report
	for _, rep := range r.reports {
		if rep.ReporterId == reporterId {
			result = append(result, *rep)
		}
	}
	return result, nil
}

// Count 当前举报记录总数，供测试断言
func (r *ReportRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
