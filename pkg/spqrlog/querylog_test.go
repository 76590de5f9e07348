package spqrlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZeroTraceLoggerWritesThroughZero(t *testing.T) {
	var buf bytes.Buffer
	saved := Zero
	defer func() { Zero = saved }()

	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	Zero = &l

	(&ZeroTraceLogger{}).Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{"sql": "select 1"})
	assert.Contains(t, buf.String(), `"message":"Query"`)
	assert.Contains(t, buf.String(), "select 1")

	buf.Reset()
	(&ZeroTraceLogger{}).Log(context.Background(), tracelog.LogLevelNone, "Query", nil)
	assert.Empty(t, buf.String())
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, TraceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelError, TraceLevel(zerolog.FatalLevel))
	assert.Equal(t, tracelog.LogLevelNone, TraceLevel(zerolog.Disabled))
}
