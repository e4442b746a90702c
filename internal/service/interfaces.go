// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、资料管理与通讯录搜索
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 Refresh Token 换取新的双令牌
	RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// UpdateUserInfo 更新当前用户资料
	UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error
}

// ConnectionService 连接业务接口
// 管理用户之间的好友关系状态机：申请、接受、拒绝、拉黑、解除
type ConnectionService interface {
	// List 获取当前用户的连接列表，statusFilter 为空时返回全部
	List(userId, statusFilter string) ([]respond.ConnectionListRespond, error)
	// SendRequest 向目标用户发起连接申请
	// 对方已有在途反向申请时直接合并为好友
	SendRequest(userId, targetId string) (*respond.ConnectionStateRespond, error)
	// Respond 处理指定连接记录（accept/decline/block）
	Respond(userId string, req request.RespondConnectionRequest) (*respond.ConnectionStateRespond, error)
	// Remove 解除关系或撤回申请，物理删除记录，无记录时 removed=false
	Remove(userId, peerId string) (*respond.RemoveConnectionRespond, error)
	// SearchWithRelationship 按昵称搜索用户并标注与当前用户的关系
	SearchWithRelationship(userId, keyword string) ([]respond.SearchUserRespond, error)
}

// ConversationService 会话业务接口
// 处理 1:1 会话的打开、消息收发、已读与分页
type ConversationService interface {
	// Open 打开（或创建）与对端的唯一会话
	Open(userId, peerId string) (*respond.OpenConversationRespond, error)
	// ListConversations 获取会话列表，附带最新消息与未读数
	ListConversations(userId string) ([]respond.ConversationListRespond, error)
	// GetMessages 游标分页拉取会话消息
	GetMessages(userId string, req request.GetMessageListRequest) (*respond.MessageListRespond, error)
	// SendMessage 向对端发送消息，会话不存在时幂等创建
	SendMessage(userId string, req request.SendMessageRequest) (*respond.SendMessageRespond, error)
	// MarkRead 将会话中发给当前用户的未读消息全部置为已读
	MarkRead(userId, conversationId string) error
	// DeleteMessage 软删除消息，仅消息的收发双方可操作
	DeleteMessage(userId string, messageId int64) (*respond.DeleteMessageRespond, error)
}

// TapInService 面对面贴卡业务接口
// 生成短时效一次性令牌，对方扫码兑换后直接建立好友关系
type TapInService interface {
	// Generate 为当前用户生成贴卡令牌
	Generate(userId string) (*respond.GenerateTapInRespond, error)
	// Redeem 兑换令牌，与令牌签发者直接建立好友关系
	Redeem(userId, token string) (*respond.RedeemTapInRespond, error)
}

// ReportService 举报业务接口
type ReportService interface {
	// ReportUser 举报用户，同一目标 24 小时内只允许一次
	ReportUser(reporterId string, req request.ReportUserRequest) error
}
