package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deptsync/internal/common"
	"deptsync/internal/config"
	"deptsync/internal/llmreport"
	"deptsync/internal/user"
)

func newTestHandler(t *testing.T) *LLMHandler {
	t.Helper()
	dsn := fmt.Sprintf("file:llmh_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	store := llmreport.NewPromptStore(t.TempDir() + "/missing.yaml")
	// 未配置 API Key，全部走降级路径
	gateway := llmreport.NewGateway(&config.OpenAIConfig{})
	reports := llmreport.NewService(store, gateway)
	return NewLLMHandler(reports, user.NewService(db), nil)
}

func doPost(t *testing.T, handler gin.HandlerFunc, path string, body any) (*httptest.ResponseRecorder, common.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST(path, handler)

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestLLMHandler_DeptMonthlyReport(t *testing.T) {
	h := newTestHandler(t)

	t.Run("未配置模型时返回降级文案", func(t *testing.T) {
		rec, resp := doPost(t, h.DeptMonthlyReport, "/api/llm/dept-monthly-report", gin.H{
			"projects":   []gin.H{},
			"events":     []gin.H{},
			"start_date": "2025-06-01",
			"end_date":   "2025-06-30",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "缺少 API Key。", data["content"])
	})

	t.Run("缺少必填字段返回参数错误", func(t *testing.T) {
		rec, resp := doPost(t, h.DeptMonthlyReport, "/api/llm/dept-monthly-report", gin.H{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, common.CodeInvalidRequest, resp.Code)
	})
}

func TestLLMHandler_GenerateReport(t *testing.T) {
	h := newTestHandler(t)

	t.Run("分发到项目报告流程", func(t *testing.T) {
		rec, resp := doPost(t, h.GenerateReport, "/api/llm/generate-report", gin.H{
			"report_type": "project",
			"project":     gin.H{"title": "交付项目"},
			"start_date":  "2025-06-01",
			"end_date":    "2025-06-30",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "project", data["type"])
		assert.Equal(t, "缺少 API Key。请配置环境变量。", data["content"])
	})

	t.Run("不支持的类型返回业务错误", func(t *testing.T) {
		rec, resp := doPost(t, h.GenerateReport, "/api/llm/generate-report", gin.H{
			"report_type": "quarterly",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, common.CodeUnsupportedReportType, resp.Code)
		assert.Contains(t, resp.Message, "不支持的报告类型: quarterly")
	})
}

func TestLLMHandler_GenerateReportAsync_NoQueue(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := doPost(t, h.GenerateReportAsync, "/api/llm/generate-report-async", gin.H{
		"report_type": "dept_monthly",
	})

	require.NotEqual(t, http.StatusOK, rec.Code)
	assert.Equal(t, common.CodeReportEnqueueFailed, resp.Code)
}
