// Package report 实现用户举报
// 举报记录落库供人工审核，同一举报人对同一目标设冷却期防刷
package report

import (
	"context"

	"go.uber.org/zap"

	"campus_link_server/internal/dao/mysql/repository"
	myredis "campus_link_server/internal/dao/redis"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/model"
	"campus_link_server/pkg/constants"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/random"
)

// reportService 举报业务逻辑实现
type reportService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewReportService 构造函数，注入依赖
func NewReportService(repos *repository.Repositories, cache myredis.CacheService) *reportService {
	return &reportService{repos: repos, cache: cache}
}

// cooldownKey 冷却期的 Redis 键，按 举报人+目标 维度
func cooldownKey(reporterId, targetId string) string {
	return "report_cooldown:" + reporterId + ":" + targetId
}

// ReportUser 举报用户
// SetNX 抢占冷却位：冷却期内的重复举报直接拒绝，不落库
func (s *reportService) ReportUser(reporterId string, req request.ReportUserRequest) error {
	if reporterId == req.TargetId {
		return errorx.New(errorx.CodeInvalidParam, "不能举报自己")
	}

	if _, err := s.repos.User.FindByUuid(req.TargetId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "被举报用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	ok, err := s.cache.SetNX(context.Background(), cooldownKey(reporterId, req.TargetId), "1", constants.REPORT_COOLDOWN)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if !ok {
		return errorx.New(errorx.CodeTooManyRequests, "举报过于频繁，请稍后再试")
	}

	report := &model.Report{
		Uuid:       "R" + random.GetNowAndLenRandomString(11),
		ReporterId: reporterId,
		TargetId:   req.TargetId,
		Reason:     req.Reason,
	}
	if err := s.repos.Report.Create(report); err != nil {
		zap.L().Error("创建举报记录失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
