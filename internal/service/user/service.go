// Package user 实现用户业务逻辑
// 覆盖注册、登录、令牌刷新、资料读写
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"campus_link_server/internal/dao/mysql/repository"
	myredis "campus_link_server/internal/dao/redis"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/dto/respond"
	"campus_link_server/internal/model"
	"campus_link_server/pkg/constants"
	"campus_link_server/pkg/enum/user_info/user_status_enum"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/jwt"
	"campus_link_server/pkg/util/random"
)

// userInfoService 用户业务逻辑实现
// 通过构造函数注入 Repository 和缓存依赖
type userInfoService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewUserService 构造函数，注入依赖
func NewUserService(repos *repository.Repositories, cache myredis.CacheService) *userInfoService {
	return &userInfoService{repos: repos, cache: cache}
}

// checkTelephoneValid 检验电话是否有效
func (u *userInfoService) checkTelephoneValid(telephone string) bool {
	pattern := `^1([38][0-9]|14[579]|5[^4]|16[6]|7[1-35-8]|9[189])\d{8}$`
	match, err := regexp.MatchString(pattern, telephone)
	if err != nil {
		zap.L().Error(err.Error())
	}
	return match
}

// formatDate 会话/资料展示用的日期格式
func formatDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%d.%d.%d", year, int(month), day)
}

// Register 用户注册
// 手机号全局唯一，注册成功即视为登录，直接下发双 Token
func (u *userInfoService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if !u.checkTelephoneValid(req.Telephone) {
		return nil, errorx.New(errorx.CodeInvalidParam, "手机号格式不正确")
	}

	// 1. 检查手机号是否已注册
	_, err := u.repos.User.FindByTelephone(req.Telephone)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该手机号已注册")
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 2. 创建用户，密码在 BeforeSave Hook 中加密
	newUser := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Nickname:    req.Nickname,
		Telephone:   req.Telephone,
		Email:       req.Email,
		Campus:      req.Campus,
		Major:       req.Major,
		RawPassword: req.Password,
		Status:      user_status_enum.NORMAL,
	}
	if err := u.repos.User.Create(newUser); err != nil {
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 3. 下发双 Token
	accessToken, refreshToken, err := u.issueTokens(newUser.Uuid)
	if err != nil {
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Nickname:     newUser.Nickname,
		Telephone:    newUser.Telephone,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (u *userInfoService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用")
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		return nil, err
	}

	// 更新上次登录时间，失败不阻塞登录流程
	user.LastOnlineAt.Time = time.Now()
	user.LastOnlineAt.Valid = true
	if err := u.repos.User.Update(user); err != nil {
		zap.L().Warn("更新登录时间失败", zap.Error(err))
	}

	loginRsp := &respond.LoginRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Telephone:    user.Telephone,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Campus:       user.Campus,
		Major:        user.Major,
		Signature:    user.Signature,
		CreatedAt:    formatDate(user.CreatedAt),
		Status:       user.Status,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	return loginRsp, nil
}

// issueTokens 生成双 Token 并把 Refresh Token ID 写入 Redis 实现单点互踢
func (u *userInfoService) issueTokens(userUuid string) (access string, refresh string, err error) {
	access, err = jwt.GenerateAccessToken(userUuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	refresh, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	redisKey := "user_token:" + userUuid
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := u.cache.Set(context.Background(), redisKey, tokenID, ttl); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}
	return access, refresh, nil
}

// RefreshToken 用 Refresh Token 换取新的双令牌
// 校验流程：
//  1. 解析并验证签名与过期时间
//  2. 校验 Subject 确为 refresh_token
//  3. 与 Redis 中保存的 Token ID 比对，旧设备的令牌在新登录后即失效
func (u *userInfoService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "登录已过期，请重新登录")
	}
	if !claims.IsRefresh() {
		return nil, errorx.New(errorx.CodeUnauthorized, "无效的刷新令牌")
	}

	redisKey := "user_token:" + claims.UserID
	storedID, err := u.cache.Get(context.Background(), redisKey)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if storedID == "" || storedID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "登录已失效，请重新登录")
	}

	// 轮换：签发新对并覆盖 Redis 中的 Token ID
	access, refresh, err := u.issueTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// GetUserInfo 获取单个用户信息
// 走 cache-aside：优先读缓存，未命中回源数据库并回填
func (u *userInfoService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	cacheKey := "user_info:" + uuid

	if cached, err := u.cache.Get(context.Background(), cacheKey); err == nil && cached != "" {
		var rsp respond.GetUserInfoRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return &rsp, nil
		}
		// 缓存数据异常，删掉走回源
		_ = u.cache.Delete(context.Background(), cacheKey)
	}

	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.GetUserInfoRespond{
		Uuid:      user.Uuid,
		Nickname:  user.Nickname,
		Telephone: user.Telephone,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Campus:    user.Campus,
		Major:     user.Major,
		Signature: user.Signature,
		CreatedAt: formatDate(user.CreatedAt),
		Status:    user.Status,
	}

	if data, err := json.Marshal(rsp); err == nil {
		ttl := time.Duration(constants.REDIS_TIMEOUT) * time.Minute
		if err := u.cache.Set(context.Background(), cacheKey, string(data), ttl); err != nil {
			zap.L().Warn("回填用户信息缓存失败", zap.Error(err))
		}
	}
	return rsp, nil
}

// UpdateUserInfo 更新当前用户资料
// 空字段视为不修改，更新后失效缓存
func (u *userInfoService) UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Campus != "" {
		user.Campus = req.Campus
	}
	if req.Major != "" {
		user.Major = req.Major
	}
	if req.Signature != "" {
		user.Signature = req.Signature
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := u.repos.User.Update(user); err != nil {
		zap.L().Error("更新用户资料失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := u.cache.Delete(context.Background(), "user_info:"+uuid); err != nil {
		zap.L().Warn("失效用户信息缓存失败", zap.Error(err))
	}
	return nil
}
