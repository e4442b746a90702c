// Package tapin 实现面对面贴卡加好友
// 发起方生成短时效一次性令牌（二维码内容），对方扫码兑换后
// 跳过申请流程直接建立好友关系
package tapin

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus_link_server/internal/dao/mysql/repository"
	myredis "campus_link_server/internal/dao/redis"
	"campus_link_server/internal/dto/respond"
	"campus_link_server/internal/model"
	"campus_link_server/pkg/constants"
	"campus_link_server/pkg/enum/connection/connection_status_enum"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/random"
)

// tapInService 贴卡业务逻辑实现
type tapInService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewTapInService 构造函数，注入依赖
func NewTapInService(repos *repository.Repositories, cache myredis.CacheService) *tapInService {
	return &tapInService{repos: repos, cache: cache}
}

// tokenKey 贴卡令牌的 Redis 键
func tokenKey(token string) string {
	return "tapin_token:" + token
}

// Generate 为当前用户生成贴卡令牌
// 令牌写入 Redis 并设置过期时间，值为签发者 uuid
func (s *tapInService) Generate(userId string) (*respond.GenerateTapInRespond, error) {
	token := uuid.NewString()
	if err := s.cache.Set(context.Background(), tokenKey(token), userId, constants.TAPIN_TOKEN_TTL); err != nil {
		zap.L().Error("写入贴卡令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.GenerateTapInRespond{
		Token:     token,
		ExpiresIn: int64(constants.TAPIN_TOKEN_TTL.Seconds()),
	}, nil
}

// Redeem 兑换贴卡令牌，与签发者直接建立好友关系
// GetDel 原子核销，同一令牌只能兑换一次；已拉黑的配对拒绝兑换
func (s *tapInService) Redeem(userId, token string) (*respond.RedeemTapInRespond, error) {
	issuerId, err := s.cache.GetDel(context.Background(), tokenKey(token))
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "令牌不存在或已过期")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if issuerId == userId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能兑换自己的令牌")
	}

	issuer, err := s.repos.User.FindByUuid(issuerId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "签发用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	conn, err := s.ensureAccepted(userId, issuerId)
	if err != nil {
		return nil, err
	}

	return &respond.RedeemTapInRespond{
		ConnectionId: conn.Uuid,
		PeerId:       issuer.Uuid,
		PeerNickname: issuer.Nickname,
	}, nil
}

// ensureAccepted 把一对用户的关系推进到已通过
// 面对面场景双方意愿都已确认，在途申请直接转正，无记录直接建好友
func (s *tapInService) ensureAccepted(userId, issuerId string) (*model.Connection, error) {
	existing, err := s.repos.Connection.FindByPair(userId, issuerId)
	if err == nil {
		switch existing.Status {
		case connection_status_enum.BLOCKED:
			return nil, errorx.New(errorx.CodeForbidden, "当前关系已被拉黑")
		case connection_status_enum.ACCEPTED:
			return existing, nil
		default:
			if err := s.repos.Connection.UpdateStatus(existing.Uuid, connection_status_enum.ACCEPTED); err != nil {
				zap.L().Error(err.Error())
				return nil, errorx.ErrServerBusy
			}
			existing.Status = connection_status_enum.ACCEPTED
			return existing, nil
		}
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	conn := &model.Connection{
		Uuid:        "C" + random.GetNowAndLenRandomString(11),
		InitiatorId: issuerId,
		TargetId:    userId,
		Status:      connection_status_enum.ACCEPTED,
	}
	if err := s.repos.Connection.Create(conn); err != nil {
		// 并发兑换/申请撞唯一索引，重读后按同一规则推进
		if errorx.IsConflict(err) {
			return s.ensureAccepted(userId, issuerId)
		}
		zap.L().Error("创建连接记录失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return conn, nil
}
