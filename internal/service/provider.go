// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"campus_link_server/internal/dao/mysql/repository"
	myredis "campus_link_server/internal/dao/redis"
	"campus_link_server/internal/service/connection"
	"campus_link_server/internal/service/conversation"
	"campus_link_server/internal/service/report"
	"campus_link_server/internal/service/tapin"
	"campus_link_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User         UserService         // 用户 Service
	Connection   ConnectionService   // 连接 Service
	Conversation ConversationService // 会话 Service
	TapIn        TapInService        // 贴卡 Service
	Report       ReportService       // 举报 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例和缓存服务
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService) *Services {
	userSvc := user.NewUserService(repos, cache)
	connSvc := connection.NewConnectionService(repos)
	convSvc := conversation.NewConversationService(repos, cache)
	tapinSvc := tapin.NewTapInService(repos, cache)
	reportSvc := report.NewReportService(repos, cache)

	return &Services{
		User:         userSvc,
		Connection:   connSvc,
		Conversation: convSvc,
		TapIn:        tapinSvc,
		Report:       reportSvc,
	}
}
