// Package conversation 实现 1:1 会话与消息业务逻辑
// 会话按参与者无序对唯一，消息按时间游标分页，删除只做软删除
package conversation

import (
	"context"
	"encoding/json"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"campus_link_server/internal/dao/mysql/repository"
	myredis "campus_link_server/internal/dao/redis"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/dto/respond"
	"campus_link_server/internal/model"
	"campus_link_server/pkg/constants"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/random"
	"campus_link_server/pkg/util/snowflake"
)

// conversationService 会话业务逻辑实现
type conversationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewConversationService 构造函数，注入依赖
func NewConversationService(repos *repository.Repositories, cache myredis.AsyncCacheService) *conversationService {
	return &conversationService{repos: repos, cache: cache}
}

// listCacheKey 会话列表缓存键
func listCacheKey(userId string) string {
	return "conversation_list:" + userId
}

// invalidateListCache 异步失效会话列表缓存
// 消息收发和已读变更都会改变列表内容，失效动作放入 Worker 队列，
// 不阻塞请求主流程
func (s *conversationService) invalidateListCache(userIds ...string) {
	keys := make([]string, 0, len(userIds))
	for _, id := range userIds {
		keys = append(keys, listCacheKey(id))
	}
	s.cache.SubmitTask(func() {
		for _, key := range keys {
			if err := s.cache.Delete(context.Background(), key); err != nil {
				zap.L().Warn("失效会话列表缓存失败", zap.String("key", key), zap.Error(err))
			}
		}
	})
}

// Open 打开（或创建）与对端的唯一会话
// (A,B) 和 (B,A) 收敛到同一条记录
func (s *conversationService) Open(userId, peerId string) (*respond.OpenConversationRespond, error) {
	if userId == peerId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能与自己建立会话")
	}
	if _, err := s.repos.User.FindByUuid(peerId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "对方用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	conv, err := s.upsertConversation(userId, peerId)
	if err != nil {
		return nil, err
	}
	return &respond.OpenConversationRespond{
		ConversationId: conv.Uuid,
		PeerId:         conv.OtherOf(userId),
	}, nil
}

// upsertConversation 幂等取得无序对的会话记录
func (s *conversationService) upsertConversation(userId, peerId string) (*model.Conversation, error) {
	conv := &model.Conversation{
		Uuid:         "S" + random.GetNowAndLenRandomString(11),
		ParticipantA: userId,
		ParticipantB: peerId,
	}
	conv, err := s.repos.Conversation.Upsert(conv)
	if err != nil {
		zap.L().Error("会话 upsert 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return conv, nil
}

// ListConversations 获取会话列表，附带对端资料、最新消息与未读数
// 聚合流程（全部批量查询，避免按会话逐个回表）：
//  1. 查出用户全部会话
//  2. 一次查询取每个会话的最新消息
//  3. 一次查询统计每个会话发给当前用户的未读数
//  4. 一次查询取对端用户资料
func (s *conversationService) ListConversations(userId string) ([]respond.ConversationListRespond, error) {
	cacheKey := listCacheKey(userId)
	if cached, err := s.cache.Get(context.Background(), cacheKey); err == nil && cached != "" {
		var list []respond.ConversationListRespond
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
		_ = s.cache.Delete(context.Background(), cacheKey)
	}

	convs, err := s.repos.Conversation.FindByUserId(userId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if len(convs) == 0 {
		return []respond.ConversationListRespond{}, nil
	}

	convIds := make([]string, 0, len(convs))
	peerIds := make([]string, 0, len(convs))
	for i := range convs {
		convIds = append(convIds, convs[i].Uuid)
		peerIds = append(peerIds, convs[i].OtherOf(userId))
	}

	latest, err := s.repos.Message.FindLatestByConversationIds(convIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	latestMap := make(map[string]*model.Message, len(latest))
	for i := range latest {
		latestMap[latest[i].ConversationId] = &latest[i]
	}

	unread, err := s.repos.Message.CountUnreadGrouped(convIds, userId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	peers, err := s.repos.User.FindByUuids(peerIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	peerMap := make(map[string]*model.UserInfo, len(peers))
	for i := range peers {
		peerMap[peers[i].Uuid] = &peers[i]
	}

	list := make([]respond.ConversationListRespond, 0, len(convs))
	for i := range convs {
		item := respond.ConversationListRespond{
			ConversationId: convs[i].Uuid,
			PeerId:         convs[i].OtherOf(userId),
			UnreadCount:    unread[convs[i].Uuid],
		}
		if peer, ok := peerMap[item.PeerId]; ok {
			item.PeerNickname = peer.Nickname
			item.PeerAvatar = peer.Avatar
		}
		// 最新消息以消息表实时扫描为准，软删除后列表随之回退
		if msg, ok := latestMap[convs[i].Uuid]; ok {
			item.LastMessage = msg.Content
			item.LastMessageAt = msg.CreatedAt.Format("2006-01-02 15:04:05")
		}
		list = append(list, item)
	}

	if data, err := json.Marshal(list); err == nil {
		ttl := time.Duration(constants.REDIS_TIMEOUT) * time.Minute
		if err := s.cache.Set(context.Background(), cacheKey, string(data), ttl); err != nil {
			zap.L().Warn("回填会话列表缓存失败", zap.Error(err))
		}
	}
	return list, nil
}

// GetMessages 游标分页拉取会话消息
// 游标为毫秒时间戳，查询严格早于游标的 limit+1 条（倒序），
// 多出的那条只用来探测还有没有下一页；返回前反转为升序，
// 下一页游标取本页最早一条消息的时间戳
func (s *conversationService) GetMessages(userId string, req request.GetMessageListRequest) (*respond.MessageListRespond, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = constants.MESSAGE_PAGE_DEF
	}
	if limit > constants.MESSAGE_PAGE_MAX {
		limit = constants.MESSAGE_PAGE_MAX
	}

	conv, err := s.repos.Conversation.FindByUuid(req.ConversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !conv.HasParticipant(userId) {
		return nil, errorx.New(errorx.CodeForbidden, "无权查看该会话")
	}

	before := time.Now()
	if req.Cursor > 0 {
		before = time.UnixMilli(req.Cursor)
	}

	msgs, err := s.repos.Message.FindPage(conv.Uuid, before, limit)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[:limit]
	}

	rsp := &respond.MessageListRespond{
		Messages: make([]respond.MessageRespond, 0, len(msgs)),
		HasMore:  hasMore,
	}
	if hasMore {
		// msgs 为倒序，末尾即本页最早一条
		rsp.NextCursor = msgs[len(msgs)-1].CreatedAt.UnixMilli()
	}

	// 反转为升序返回
	for i := len(msgs) - 1; i >= 0; i-- {
		rsp.Messages = append(rsp.Messages, respond.MessageRespond{
			MessageId: msgs[i].Uuid,
			SendId:    msgs[i].SendId,
			ReceiveId: msgs[i].ReceiveId,
			Content:   msgs[i].Content,
			IsRead:    msgs[i].IsRead,
			CreatedAt: msgs[i].CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rsp, nil
}

// SendMessage 向对端发送消息
// 会话不存在时幂等创建，(A,B) 与 (B,A) 落在同一会话
func (s *conversationService) SendMessage(userId string, req request.SendMessageRequest) (*respond.SendMessageRespond, error) {
	if userId == req.PeerId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能给自己发消息")
	}
	length := utf8.RuneCountInString(req.Content)
	if length < 1 || length > constants.MESSAGE_MAX_LEN {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "消息长度需在 1-%d 字符之间", constants.MESSAGE_MAX_LEN)
	}

	conv, err := s.upsertConversation(userId, req.PeerId)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SendId:         userId,
		ReceiveId:      req.PeerId,
		Content:        req.Content,
		IsRead:         false,
	}
	if err := s.repos.Message.Create(msg); err != nil {
		zap.L().Error("创建消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	at := msg.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	if err := s.repos.Conversation.UpdateLastMessage(conv.Uuid, msg.Content, at); err != nil {
		// 摘要列仅供展示兜底，失败不影响消息本体
		zap.L().Warn("更新会话摘要失败", zap.Error(err))
	}

	s.invalidateListCache(userId, req.PeerId)

	return &respond.SendMessageRespond{
		MessageId:      msg.Uuid,
		ConversationId: conv.Uuid,
		CreatedAt:      at.Format("2006-01-02 15:04:05"),
	}, nil
}

// MarkRead 将会话中发给当前用户的未读消息全部置为已读
// 没有未读消息时同样成功，重复调用幂等
func (s *conversationService) MarkRead(userId, conversationId string) error {
	if err := s.repos.Message.MarkRead(conversationId, userId); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	s.invalidateListCache(userId)
	return nil
}

// DeleteMessage 软删除消息
// 仅消息的收发双方可操作；删除后消息在分页结果中不再出现，
// 物理行保留，审计查询仍可见
func (s *conversationService) DeleteMessage(userId string, messageId int64) (*respond.DeleteMessageRespond, error) {
	msg, err := s.repos.Message.FindByUuid(messageId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "消息不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if msg.SendId != userId && msg.ReceiveId != userId {
		return nil, errorx.New(errorx.CodeForbidden, "无权删除该消息")
	}

	if err := s.repos.Message.SoftDelete(messageId); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	s.invalidateListCache(msg.SendId, msg.ReceiveId)

	return &respond.DeleteMessageRespond{
		MessageId:      messageId,
		ConversationId: msg.ConversationId,
	}, nil
}
