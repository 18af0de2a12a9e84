package user_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deptsync/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:user_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))
	return db
}

func TestService_Register(t *testing.T) {
	svc := user.NewService(setupTestDB(t))
	ctx := context.Background()

	t.Run("展示名固定为姓名加工号", func(t *testing.T) {
		u, err := svc.Register(ctx, &user.RegisterRequest{
			JobNumber: "1001", Name: "张三", Password: "secret-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "张三(1001)", u.Username)
		assert.Equal(t, user.RoleEmployee, u.Role)
		assert.NotEqual(t, "secret-1", u.PasswordHash)
	})

	t.Run("工号重复注册被拒绝", func(t *testing.T) {
		_, err := svc.Register(ctx, &user.RegisterRequest{
			JobNumber: "1001", Name: "李四", Password: "secret-2",
		})
		assert.ErrorIs(t, err, user.ErrJobNumberTaken)
	})
}

func TestService_Authenticate(t *testing.T) {
	svc := user.NewService(setupTestDB(t))
	ctx := context.Background()

	registered, err := svc.Register(ctx, &user.RegisterRequest{
		JobNumber: "1002", Name: "王五", Password: "correct-pass",
	})
	require.NoError(t, err)

	t.Run("正确口令登录成功", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "1002", "correct-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("错误口令与未知工号同样失败", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "1002", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "9999", "correct-pass")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestService_UpdateAndPromote(t *testing.T) {
	svc := user.NewService(setupTestDB(t))
	ctx := context.Background()

	u, err := svc.Register(ctx, &user.RegisterRequest{
		JobNumber: "1003", Name: "赵六", Password: "secret-3",
	})
	require.NoError(t, err)

	t.Run("改名同步更新展示名", func(t *testing.T) {
		newName := "赵六六"
		updated, err := svc.Update(ctx, u.ID, &user.UpdateRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "赵六六(1003)", updated.Username)
	})

	t.Run("提升为管理员", func(t *testing.T) {
		require.NoError(t, svc.Promote(ctx, u.ID))
		promoted, err := svc.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, promoted.Role)
	})

	t.Run("提升不存在的用户报错", func(t *testing.T) {
		assert.ErrorIs(t, svc.Promote(ctx, "missing"), user.ErrUserNotFound)
	})
}
