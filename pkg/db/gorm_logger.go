package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// gormLogger routes GORM output through the service logger. Only slow
// statements and unexpected errors are reported; request handlers log
// their own failures with more context.
type gormLogger struct {
	logg *logger.Logger
	slow time.Duration
}

func newGormLogger(logg *logger.Logger, slow time.Duration) gormlogger.Interface {
	return &gormLogger{logg: logg, slow: slow}
}

func (g *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return g
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	g.logg.Debug(ctx, fmt.Sprintf(msg, args...))
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.logg.Warn(ctx, fmt.Sprintf(msg, args...))
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	g.logg.Error(ctx, "gorm", fmt.Errorf(msg, args...))
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.logg == nil {
		return
	}
	elapsed := time.Since(begin)
	isSlow := g.slow > 0 && elapsed > g.slow
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, context.Canceled)
	if !isSlow && !failed {
		return
	}

	sql, rows := fc()
	ctx = g.logg.WithFields(ctx, map[string]any{
		"sql":         sql,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	})
	if failed {
		g.logg.Error(ctx, "db.query_failed", err)
		return
	}
	g.logg.Warn(ctx, "db.slow_query")
}
