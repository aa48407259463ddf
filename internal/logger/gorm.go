package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's query log through zap.
type GormLogger struct {
	log   *Logger
	level gormLogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(log *Logger) *GormLogger {
	return &GormLogger{
		log:   log.With("component", "gorm"),
		level: gormLogger.Warn,
		slow:  slowQueryThreshold,
	}
}

func (g *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && g.level >= gormLogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Error("query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > g.slow && g.level >= gormLogger.Warn:
		sql, rows := fc()
		g.log.Warn("slow query", "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= gormLogger.Info:
		sql, rows := fc()
		g.log.Debug("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
