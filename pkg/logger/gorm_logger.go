package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's SQL logging through a Logger.
type GormLogger struct {
	log           Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(l Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{log: l, level: level, slowThreshold: 200 * time.Millisecond}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Error(fmt.Sprintf("sql error: %v [%s] rows=%d sql=%s", err, elapsed, rows, sql))
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.Warn(fmt.Sprintf("slow sql [%s] rows=%d sql=%s", elapsed, rows, sql))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.log.Debug(fmt.Sprintf("sql [%s] rows=%d sql=%s", elapsed, rows, sql))
	}
}
