// Package jwt 实现双令牌（访问令牌 + 刷新令牌）的签发与校验
// 访问令牌短期有效，随每个请求携带；刷新令牌长期有效，
// 内嵌一次性 TokenID，与 Redis 中的记录比对实现单端登录
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "campus_link"

// 令牌种类，写入 Subject 声明
// 中间件和刷新接口据此互相拒绝对方的令牌
const (
	SubjectAccess  = "access_token"
	SubjectRefresh = "refresh_token"
)

var (
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
)

// ErrInvalidToken 令牌签名无效或声明不完整
var ErrInvalidToken = errors.New("invalid token")

// Init 注入签名密钥与两类令牌的有效期，启动时调用一次
func Init(signSecret string, accessExpiryMinutes, refreshExpiryHours int) {
	secret = []byte(signSecret)
	accessExpiry = time.Duration(accessExpiryMinutes) * time.Minute
	refreshExpiry = time.Duration(refreshExpiryHours) * time.Hour
}

// Claims 自定义声明
type Claims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id,omitempty"` // 仅刷新令牌携带
	jwt.RegisteredClaims
}

// IsAccess 是否为访问令牌
func (c *Claims) IsAccess() bool {
	return c.Subject == SubjectAccess
}

// IsRefresh 是否为携带 TokenID 的刷新令牌
func (c *Claims) IsRefresh() bool {
	return c.Subject == SubjectRefresh && c.TokenID != ""
}

// sign 按统一的签发参数生成 HS256 令牌
func sign(userID, subject, tokenID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// GenerateAccessToken 签发访问令牌
func GenerateAccessToken(userID string) (string, error) {
	return sign(userID, SubjectAccess, "", accessExpiry)
}

// GenerateRefreshToken 签发刷新令牌
// 返回的 tokenID 由调用方存入 Redis，新登录覆盖旧值即踢掉旧设备
func GenerateRefreshToken(userID string) (tokenString string, tokenID string, err error) {
	tokenID = uuid.NewString()
	tokenString, err = sign(userID, SubjectRefresh, tokenID, refreshExpiry)
	return
}

// ParseToken 解析令牌并校验签名、有效期与签发者
// 只接受本服务用 HS256 签出的令牌
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
