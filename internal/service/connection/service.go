// Package connection 实现好友关系状态机
// 一对用户至多一条连接记录，状态在 申请中/已通过/已拉黑 之间流转，
// 拒绝和解除直接删除记录，让双方回到无关系状态
package connection

import (
	"go.uber.org/zap"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/dto/respond"
	"campus_link_server/internal/model"
	"campus_link_server/pkg/constants"
	"campus_link_server/pkg/enum/connection/connection_status_enum"
	"campus_link_server/pkg/enum/connection/relationship_enum"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/random"
)

// connectionService 连接业务逻辑实现
type connectionService struct {
	repos *repository.Repositories
}

// NewConnectionService 构造函数，注入 Repository 依赖
func NewConnectionService(repos *repository.Repositories) *connectionService {
	return &connectionService{repos: repos}
}

// resolveLabel 按查看者视角把存储状态解析为关系标签和方向
// 存储层只有三种状态，pending 行对发起方显示 pending，对接收方显示 incoming
func resolveLabel(conn *model.Connection, viewerId string) (relationship, direction string) {
	if conn.InitiatorId == viewerId {
		direction = relationship_enum.DirectionOutgoing
	} else {
		direction = relationship_enum.DirectionIncoming
	}
	switch conn.Status {
	case connection_status_enum.PENDING:
		if direction == relationship_enum.DirectionOutgoing {
			relationship = relationship_enum.PENDING
		} else {
			relationship = relationship_enum.INCOMING
		}
	case connection_status_enum.ACCEPTED:
		relationship = relationship_enum.ACCEPTED
	case connection_status_enum.BLOCKED:
		relationship = relationship_enum.BLOCKED
	default:
		relationship = relationship_enum.NONE
	}
	return relationship, direction
}

// parseStatusFilter 把过滤参数解析为存储状态
// 返回第二个值表示是否启用过滤
func parseStatusFilter(filter string) (int8, bool, error) {
	switch filter {
	case "":
		return 0, false, nil
	case relationship_enum.PENDING:
		return connection_status_enum.PENDING, true, nil
	case relationship_enum.ACCEPTED:
		return connection_status_enum.ACCEPTED, true, nil
	case relationship_enum.BLOCKED:
		return connection_status_enum.BLOCKED, true, nil
	default:
		return 0, false, errorx.New(errorx.CodeInvalidParam, "不支持的状态过滤条件")
	}
}

// List 获取当前用户的连接列表
// 按最近更新倒序，每条标注查看者视角的关系标签与方向
func (s *connectionService) List(userId, statusFilter string) ([]respond.ConnectionListRespond, error) {
	wantStatus, filtered, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	conns, err := s.repos.Connection.FindByUserId(userId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 1. 收集对端 uuid，批量查询用户资料
	peerIds := make([]string, 0, len(conns))
	for i := range conns {
		if filtered && conns[i].Status != wantStatus {
			continue
		}
		peerIds = append(peerIds, conns[i].OtherOf(userId))
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

	// 2. 组装响应
	list := make([]respond.ConnectionListRespond, 0, len(peerIds))
	for i := range conns {
		if filtered && conns[i].Status != wantStatus {
			continue
		}
		relationship, direction := resolveLabel(&conns[i], userId)
		item := respond.ConnectionListRespond{
			ConnectionId: conns[i].Uuid,
			PeerId:       conns[i].OtherOf(userId),
			Relationship: relationship,
			Direction:    direction,
			UpdatedAt:    conns[i].UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if peer, ok := peerMap[item.PeerId]; ok {
			item.PeerNickname = peer.Nickname
			item.PeerAvatar = peer.Avatar
		}
		list = append(list, item)
	}
	return list, nil
}

// SendRequest 向目标用户发起连接申请
// 状态机入口：
//   - 无记录 -> 创建 pending
//   - 对方已有在途申请 -> 直接合并为已通过（交叉申请收敛）
//   - 自己已有在途申请 / 已是好友 -> 幂等返回当前状态
//   - 已拉黑 -> 拒绝
func (s *connectionService) SendRequest(userId, targetId string) (*respond.ConnectionStateRespond, error) {
	if userId == targetId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能添加自己为好友")
	}

	if _, err := s.repos.User.FindByUuid(targetId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "目标用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 1. 先查两个方向是否已有记录
	existing, err := s.repos.Connection.FindByPair(userId, targetId)
	if err == nil {
		return s.reconcile(existing, userId)
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 2. 无记录，插入 pending 行
	conn := &model.Connection{
		Uuid:        "C" + random.GetNowAndLenRandomString(11),
		InitiatorId: userId,
		TargetId:    targetId,
		Status:      connection_status_enum.PENDING,
	}
	if err := s.repos.Connection.Create(conn); err != nil {
		// 并发窗口内对方先插入了记录，唯一索引把第二条挡下来，
		// 此时重读并按交叉申请规则收敛，不把冲突抛给调用方
		if errorx.IsConflict(err) {
			existing, err := s.repos.Connection.FindByPair(userId, targetId)
			if err != nil {
				zap.L().Error(err.Error())
				return nil, errorx.ErrServerBusy
			}
			return s.reconcile(existing, userId)
		}
		zap.L().Error("创建连接记录失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.ConnectionStateRespond{
		ConnectionId: conn.Uuid,
		Status:       relationship_enum.PENDING,
	}, nil
}

// reconcile 对已存在的记录应用 sendRequest 的收敛规则
func (s *connectionService) reconcile(conn *model.Connection, userId string) (*respond.ConnectionStateRespond, error) {
	switch conn.Status {
	case connection_status_enum.BLOCKED:
		return nil, errorx.New(errorx.CodeForbidden, "当前关系已被拉黑")
	case connection_status_enum.ACCEPTED:
		// 已是好友，幂等返回
		return &respond.ConnectionStateRespond{
			ConnectionId: conn.Uuid,
			Status:       relationship_enum.ACCEPTED,
		}, nil
	case connection_status_enum.PENDING:
		if conn.TargetId == userId {
			// 对方先申请了我，我再申请即视为双方同意
			if err := s.repos.Connection.UpdateStatus(conn.Uuid, connection_status_enum.ACCEPTED); err != nil {
				zap.L().Error(err.Error())
				return nil, errorx.ErrServerBusy
			}
			return &respond.ConnectionStateRespond{
				ConnectionId: conn.Uuid,
				Status:       relationship_enum.ACCEPTED,
			}, nil
		}
		// 自己的重复申请，幂等返回
		return &respond.ConnectionStateRespond{
			ConnectionId: conn.Uuid,
			Status:       relationship_enum.PENDING,
		}, nil
	}
	return nil, errorx.New(errorx.CodeInvalidState, "连接状态异常")
}

// Respond 处理指定连接记录
//   - accept: 仅接收方在 pending 时可调用，转为已通过
//   - decline: 仅 pending 时可调用（双方均可），删除记录
//   - block: 任意状态可调用，转为已拉黑
func (s *connectionService) Respond(userId string, req request.RespondConnectionRequest) (*respond.ConnectionStateRespond, error) {
	conn, err := s.repos.Connection.FindByUuid(req.ConnectionId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "连接记录不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !conn.Involves(userId) {
		return nil, errorx.New(errorx.CodeForbidden, "无权操作该连接")
	}

	switch req.Action {
	case "accept":
		if conn.Status != connection_status_enum.PENDING || conn.TargetId != userId {
			return nil, errorx.New(errorx.CodeInvalidState, "当前状态不允许接受操作")
		}
		if err := s.repos.Connection.UpdateStatus(conn.Uuid, connection_status_enum.ACCEPTED); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.ConnectionStateRespond{
			ConnectionId: conn.Uuid,
			Status:       relationship_enum.ACCEPTED,
		}, nil

	case "decline":
		if conn.Status != connection_status_enum.PENDING {
			return nil, errorx.New(errorx.CodeInvalidState, "当前状态不允许拒绝操作")
		}
		// 整行删除，双方回到无关系状态，之后可以重新发起全新申请
		if err := s.repos.Connection.HardDelete(conn.Uuid); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.ConnectionStateRespond{
			ConnectionId: conn.Uuid,
			Status:       relationship_enum.NONE,
		}, nil

	case "block":
		if err := s.repos.Connection.UpdateStatus(conn.Uuid, connection_status_enum.BLOCKED); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.ConnectionStateRespond{
			ConnectionId: conn.Uuid,
			Status:       relationship_enum.BLOCKED,
		}, nil
	}

	return nil, errorx.New(errorx.CodeInvalidParam, "不支持的操作类型")
}

// Remove 解除与 peerId 的任何关系（申请中/已通过/已拉黑）
// 物理删除记录；无记录时视为成功，removed=false
func (s *connectionService) Remove(userId, peerId string) (*respond.RemoveConnectionRespond, error) {
	if userId == peerId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能对自己执行该操作")
	}
	rows, err := s.repos.Connection.HardDeleteByPair(userId, peerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.RemoveConnectionRespond{Removed: rows > 0}, nil
}

// SearchWithRelationship 按昵称搜索用户并标注与当前用户的关系
// 关系标注用两次批量查询完成（我发出的 + 发给我的），不做逐个查询
func (s *connectionService) SearchWithRelationship(userId, keyword string) ([]respond.SearchUserRespond, error) {
	users, err := s.repos.User.SearchByNickname(keyword, userId, constants.SEARCH_MAX_RESULTS)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if len(users) == 0 {
		return []respond.SearchUserRespond{}, nil
	}

	candidateIds := make([]string, 0, len(users))
	for i := range users {
		candidateIds = append(candidateIds, users[i].Uuid)
	}

	outgoing, err := s.repos.Connection.FindOutgoingToAny(userId, candidateIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	incoming, err := s.repos.Connection.FindIncomingFromAny(userId, candidateIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	connByPeer := make(map[string]*model.Connection, len(outgoing)+len(incoming))
	for i := range outgoing {
		connByPeer[outgoing[i].TargetId] = &outgoing[i]
	}
	for i := range incoming {
		connByPeer[incoming[i].InitiatorId] = &incoming[i]
	}

	results := make([]respond.SearchUserRespond, 0, len(users))
	for i := range users {
		item := respond.SearchUserRespond{
			Uuid:         users[i].Uuid,
			Nickname:     users[i].Nickname,
			Avatar:       users[i].Avatar,
			Campus:       users[i].Campus,
			Major:        users[i].Major,
			Relationship: relationship_enum.NONE,
		}
		if conn, ok := connByPeer[users[i].Uuid]; ok {
			item.Relationship, _ = resolveLabel(conn, userId)
		}
		results = append(results, item)
	}
	return results, nil
}
