package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deptsync/internal/logger"
)

func newRequestLoggerRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		*seen = logger.GetRequestID(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRequestLogger_RequestID(t *testing.T) {
	t.Run("未携带时自动生成并写回响应头", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)

		newRequestLoggerRouter(&seen).ServeHTTP(w, req)

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("透传调用方的请求 ID", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-42")

		newRequestLoggerRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	})
}
