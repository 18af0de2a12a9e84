package infra

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"

	"deptsync/internal/logger"
)

const defaultSlowQueryMs = 200

// dbLogger 把 GORM 日志接到全局 zap 上，SQL 日志携带请求 ID
// 记录未找到不算错误，慢查询阈值来自数据库配置
type dbLogger struct {
	level gormLogger.LogLevel
	slow  time.Duration
}

func newDBLogger(slowQueryMs int) *dbLogger {
	if slowQueryMs <= 0 {
		slowQueryMs = defaultSlowQueryMs
	}
	return &dbLogger{
		level: gormLogger.Warn,
		slow:  time.Duration(slowQueryMs) * time.Millisecond,
	}
}

func (l *dbLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *dbLogger) Info(ctx context.Context, format string, args ...interface{}) {
	if l.level >= gormLogger.Info {
		logger.WithContext(ctx).Sugar().Infof(format, args...)
	}
}

func (l *dbLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	if l.level >= gormLogger.Warn {
		logger.WithContext(ctx).Sugar().Warnf(format, args...)
	}
}

func (l *dbLogger) Error(ctx context.Context, format string, args ...interface{}) {
	if l.level >= gormLogger.Error {
		logger.WithContext(ctx).Sugar().Errorf(format, args...)
	}
}

func (l *dbLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormLogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}

	log := logger.WithContext(ctx)
	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound):
		log.Error("SQL 执行失败", append(fields, zap.Error(err))...)
	case elapsed >= l.slow:
		log.Warn("SQL 慢查询", fields...)
	case l.level >= gormLogger.Info:
		log.Debug("SQL", fields...)
	}
}
