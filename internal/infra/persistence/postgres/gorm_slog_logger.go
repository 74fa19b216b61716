package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quizauth/config"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output to slog. Bound parameters are never rendered,
// so password hashes and usernames stay out of the query log.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

var (
	_ logger.Interface  = (*gormSlogLogger)(nil)
	_ gorm.ParamsFilter = (*gormSlogLogger)(nil)
)

// newGormSlogLogger logs failed and slow statements, and every statement in debug mode.
// The slow threshold is half the store query timeout, capped at defaultGormSlowThreshold.
func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	l := &gormSlogLogger{
		logger:        baseLogger.With(slog.String("component", "gorm")),
		level:         logger.Warn,
		slowThreshold: defaultGormSlowThreshold,
	}
	if cfg == nil {
		return l
	}

	if cfg.Env.Debug {
		l.level = logger.Info
	}
	if half := cfg.Store.QueryTimeout / 2; half > 0 && half < l.slowThreshold {
		l.slowThreshold = half
	}

	return l
}

// ParamsFilter drops bound values before GORM renders the statement.
func (l *gormSlogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// Trace reports one statement. Record-not-found is a normal lookup miss and is not logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "Query failed", attrs...)
	case elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", l.slowThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Slow query", attrs...)
	case l.level >= logger.Info:
		l.logger.LogAttrs(ctx, slog.LevelDebug, "Query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}
