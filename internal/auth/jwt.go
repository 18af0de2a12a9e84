package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenInvalid     = errors.New("无效的令牌")
	ErrTokenExpired     = errors.New("令牌已过期")
	ErrTokenBlacklisted = errors.New("令牌已注销")
)

// JWTService JWT 令牌服务
type JWTService struct {
	secretKey   []byte
	issuer      string
	expiry      time.Duration
	redisClient *redis.Client // 可为 nil，此时不启用注销黑名单
}

// NewJWTService 创建 JWT 服务
func NewJWTService(secretKey, issuer string, redisClient *redis.Client) *JWTService {
	return &JWTService{
		secretKey:   []byte(secretKey),
		issuer:      issuer,
		expiry:      7 * 24 * time.Hour, // 与原部署保持一致：令牌 7 天有效
		redisClient: redisClient,
	}
}

// TokenClaims JWT 声明
type TokenClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 为用户签发访问令牌
func (s *JWTService) GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, nil
}

// ValidateToken 验证令牌并返回声明
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// 黑名单检查（注销后的令牌拒绝访问）
	if s.redisClient != nil {
		exists, err := s.redisClient.Exists(ctx, blacklistKey(tokenString)).Result()
		if err == nil && exists > 0 {
			return nil, ErrTokenBlacklisted
		}
	}

	return claims, nil
}

// RevokeToken 将令牌加入黑名单，保留到其自然过期
func (s *JWTService) RevokeToken(ctx context.Context, tokenString string, claims *TokenClaims) error {
	if s.redisClient == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.redisClient.Set(ctx, blacklistKey(tokenString), "revoked", ttl).Err()
}

func blacklistKey(token string) string {
	return "jwt:blacklist:" + token
}

// ExtractTokenFromBearer 从 Authorization 头提取令牌
func ExtractTokenFromBearer(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
