package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// queryLogger routes gorm output through zerolog. Queries are logged at
// debug level, failed queries at error level. Lookups that found no
// record are expected and not treated as failures.
type queryLogger struct {
	log zerolog.Logger
}

// LogMode is a no-op, the level is controlled by the global zerolog level.
func (l *queryLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *queryLogger) Info(_ context.Context, format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *queryLogger) Warn(_ context.Context, format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *queryLogger) Error(_ context.Context, format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	event := l.log.Debug()
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		event = l.log.Error().Err(err)
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", time.Since(begin)).Msg("database query")
}
