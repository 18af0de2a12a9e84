package auth

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "deptsync", nil)

	token, err := svc.GenerateToken("user-1", "EMPLOYEE")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "EMPLOYEE", claims.Role)
	assert.Equal(t, "deptsync", claims.Issuer)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", "deptsync", nil)
	other := NewJWTService("other-secret", "deptsync", nil)

	token, err := other.GenerateToken("user-1", "ADMIN")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExtractTokenFromBearer(t *testing.T) {
	t.Run("标准 Bearer 头", func(t *testing.T) {
		assert.Equal(t, "abc.def.ghi", ExtractTokenFromBearer("Bearer abc.def.ghi"))
	})
	t.Run("缺少前缀返回空", func(t *testing.T) {
		assert.Empty(t, ExtractTokenFromBearer("abc.def.ghi"))
	})
	t.Run("空头返回空", func(t *testing.T) {
		assert.Empty(t, ExtractTokenFromBearer(""))
	})
}

func TestJWTService_RevokedTokenRejected(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // 使用测试数据库
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis 不可用，跳过集成测试")
	}
	defer func() {
		client.FlushDB(ctx)
		client.Close()
	}()
	client.FlushDB(ctx)

	svc := NewJWTService("test-secret", "deptsync", client)

	token, err := svc.GenerateToken("user-1", "EMPLOYEE")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, token, claims))

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenBlacklisted)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong-pass", hash))
}
