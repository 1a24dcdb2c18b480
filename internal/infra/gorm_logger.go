package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

// GormZapLogger GORM logger writing to the app sink; slow statements go
// through PerformanceLogger and every statement is timed into
// DBQueryDuration.
type GormZapLogger struct {
	Logger                    *logger.Logger
	Perf                      *logger.PerformanceLogger
	LogLevel                  gormLogger.LogLevel
	IgnoreRecordNotFoundError bool
}

// NewGormZapLogger adapter at warn level
func NewGormZapLogger(log *logger.Logger, perf *logger.PerformanceLogger) *GormZapLogger {
	return &GormZapLogger{
		Logger:                    log,
		Perf:                      perf,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
	}
}

// LogMode sets the level
func (l *GormZapLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info
func (l *GormZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Logger.WithContext(ctx).Info(fmt.Sprintf(msg, data...))
	}
}

// Warn
func (l *GormZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Logger.WithContext(ctx).Warn(fmt.Sprintf(msg, data...))
	}
}

// Error
func (l *GormZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Logger.WithContext(ctx).Error(fmt.Sprintf(msg, data...))
	}
}

// Trace SQL statement
func (l *GormZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	metrics.DBQueryDuration.WithLabelValues(statementKind(sql)).Observe(elapsed.Seconds())
	elapsedMs := float64(elapsed) / float64(time.Millisecond)

	log := l.Logger.WithContext(ctx)
	fields := []zap.Field{
		zap.Float64("duration_ms", logger.RoundMillis(elapsedMs)),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
	}

	if err != nil && (!errors.Is(err, gormLogger.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError) {
		if l.LogLevel >= gormLogger.Error {
			fields = append(fields, logger.ErrorType(logger.ErrorTypeDatabase), zap.Error(err))
			log.Error("SQL execution error", fields...)
		}
		return
	}

	if l.Perf != nil && elapsedMs > l.Perf.SlowQueryThreshold() {
		if l.LogLevel >= gormLogger.Warn {
			l.Perf.LogSlowQuery(sql, elapsedMs)
		}
		return
	}

	if l.LogLevel >= gormLogger.Info {
		log.Debug("SQL executed", fields...)
	}
}

// statementKind first SQL keyword, lowercased ("select", "insert", ...)
func statementKind(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \t\n("); i > 0 {
		sql = sql[:i]
	}
	if sql == "" {
		return "unknown"
	}
	return strings.ToLower(sql)
}
