package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func sqlFunc(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)

	gl, _ = newObservedGormLogger(gormlogger.Warn,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
	)
	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	changed, ok := gl.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Error, changed.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn)
	ctx := context.Background()

	gl.Info(ctx, "migrating %s", "invoices")
	gl.Warn(ctx, "slow %d", 1)
	gl.Error(ctx, "broken %s", "pipe")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "slow 1", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "broken pipe", entries[1].Message)
	assert.Equal(t, "gorm", entries[1].LoggerName)
}

// ====== Trace Tests ======

func TestGormLogger_Trace(t *testing.T) {
	const stmt = "SELECT * FROM invoices WHERE id = 1"

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), sqlFunc(stmt, 1), errors.New("boom"))
		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("error is logged with the statement", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		ctx := WithActorID(context.Background(), "V1")
		gl.Trace(ctx, time.Now(), sqlFunc(stmt, 0), errors.New("connection refused"))

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, stmt, fields["sql"])
		assert.Equal(t, "connection refused", fields["error"])
		assert.Equal(t, "V1", fields["actor_id"])
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), sqlFunc(stmt, 0), gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("record not found can be logged", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(context.Background(), time.Now(), sqlFunc(stmt, 0), gormlogger.ErrRecordNotFound)
		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("slow query is a warning", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(10*time.Millisecond))
		gl.Trace(context.Background(), time.Now().Add(-50*time.Millisecond), sqlFunc(stmt, 3), nil)

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "slow sql", entry.Message)
		assert.EqualValues(t, 3, entry.ContextMap()["rows"])
	})

	t.Run("zero threshold disables slow warnings", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(0))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc(stmt, 1), nil)
		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("info level logs every statement at debug", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), sqlFunc(stmt, 1), nil)

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, zapcore.DebugLevel, recorded.All()[0].Level)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.input))
		})
	}
}
