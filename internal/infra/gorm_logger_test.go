package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestNewDBLogger(t *testing.T) {
	t.Run("未配置阈值时使用默认值", func(t *testing.T) {
		l := newDBLogger(0)
		assert.Equal(t, 200*time.Millisecond, l.slow)
		assert.Equal(t, gormLogger.Warn, l.level)
	})

	t.Run("阈值来自配置", func(t *testing.T) {
		assert.Equal(t, 500*time.Millisecond, newDBLogger(500).slow)
	})
}

func TestDBLoggerLogMode(t *testing.T) {
	base := newDBLogger(100)
	clone := base.LogMode(gormLogger.Info)

	// LogMode 返回副本，不改动原实例
	assert.Equal(t, gormLogger.Warn, base.level)
	assert.Equal(t, gormLogger.Info, clone.(*dbLogger).level)
	assert.Equal(t, base.slow, clone.(*dbLogger).slow)
}
