package task_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deptsync/internal/task"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:task_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&task.Task{}))
	return db
}

func newTask(t *testing.T, svc *task.Service) *task.Task {
	t.Helper()
	created, err := svc.Create(context.Background(), &task.CreateRequest{
		ProjectID: "p1",
		Title:     "接口开发",
		Deadline:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return created
}

func TestService_Create(t *testing.T) {
	svc := task.NewService(setupTestDB(t))
	created := newTask(t, svc)

	assert.Equal(t, task.StatusPending, created.Status)
	assert.Zero(t, created.Progress)
	assert.NotNil(t, created.AssigneeIDs)
}

func TestService_UpdateProgress(t *testing.T) {
	svc := task.NewService(setupTestDB(t))
	ctx := context.Background()

	t.Run("进度拉满自动置为已完成", func(t *testing.T) {
		created := newTask(t, svc)
		progress := 100
		updated, err := svc.Update(ctx, created.ID, &task.UpdateRequest{Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, 100, updated.Progress)
		assert.Equal(t, task.StatusCompleted, updated.Status)
	})

	t.Run("显式状态优先于自动完成", func(t *testing.T) {
		created := newTask(t, svc)
		progress := 100
		status := string(task.StatusInProgress)
		updated, err := svc.Update(ctx, created.ID, &task.UpdateRequest{Progress: &progress, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, updated.Status)
	})

	t.Run("部分进度不改状态", func(t *testing.T) {
		created := newTask(t, svc)
		progress := 60
		updated, err := svc.Update(ctx, created.ID, &task.UpdateRequest{Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, task.StatusPending, updated.Status)
	})
}

func TestService_ListByProject(t *testing.T) {
	svc := task.NewService(setupTestDB(t))
	ctx := context.Background()

	newTask(t, svc)
	_, err := svc.Create(ctx, &task.CreateRequest{
		ProjectID: "p2", Title: "其他项目任务",
		Deadline: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "接口开发", list[0].Title)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
