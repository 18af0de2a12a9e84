package report_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deptsync/internal/report"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:report_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&report.WeeklyReport{}, &report.WeeklyReportDetail{}))
	return db
}

func weekStart() time.Time {
	return time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
}

func TestService_CreateWithDetails(t *testing.T) {
	svc := report.NewService(setupTestDB(t))
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", "张三(1001)", &report.CreateRequest{
		WeekStartDate:    weekStart(),
		Content:          "本周完成联调",
		LinkedProjectIDs: []string{"p1"},
		Details: []report.DetailRequest{
			{ProjectID: "p2", ProjectTitle: "中台项目", Content: "开发中", Plan: "联调"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "张三(1001)", r.Username)
	require.Len(t, r.Details, 1)
	assert.Equal(t, r.ID, r.Details[0].ReportID)

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.Equal(t, "中台项目", got.Details[0].ProjectTitle)
}

func TestService_ListByProject(t *testing.T) {
	svc := report.NewService(setupTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "张三(1001)", &report.CreateRequest{
		WeekStartDate:    weekStart(),
		Content:          "整报关联",
		LinkedProjectIDs: []string{"p1"},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u2", "李四(1002)", &report.CreateRequest{
		WeekStartDate: weekStart(),
		Content:       "明细关联",
		Details: []report.DetailRequest{
			{ProjectID: "p1", ProjectTitle: "甲", Content: "进展"},
		},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u3", "王五(1003)", &report.CreateRequest{
		WeekStartDate:    weekStart(),
		Content:          "无关周报",
		LinkedProjectIDs: []string{"p9"},
	})
	require.NoError(t, err)

	t.Run("整报关联与明细关联都命中", func(t *testing.T) {
		list, err := svc.ListByProject(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("按提交人过滤", func(t *testing.T) {
		list, err := svc.List(ctx, "u3")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "无关周报", list[0].Content)
	})
}

func TestService_DeleteCascadesDetails(t *testing.T) {
	db := setupTestDB(t)
	svc := report.NewService(db)
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", "张三(1001)", &report.CreateRequest{
		WeekStartDate: weekStart(),
		Details: []report.DetailRequest{
			{ProjectID: "p1", ProjectTitle: "甲", Content: "进展"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err = svc.Get(ctx, r.ID)
	assert.ErrorIs(t, err, report.ErrReportNotFound)

	var count int64
	require.NoError(t, db.Model(&report.WeeklyReportDetail{}).Where("report_id = ?", r.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, r.ID), report.ErrReportNotFound)
}
