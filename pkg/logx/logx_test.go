package logx_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logx.LevelDebug, logx.ParseLevel("DEBUG"))
	assert.Equal(t, logx.LevelWarn, logx.ParseLevel("warning"))
	assert.Equal(t, logx.LevelError, logx.ParseLevel("error"))
	assert.Equal(t, logx.LevelInfo, logx.ParseLevel("nonsense"))
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logx.SetOutput(&buf)
	logx.SetLevel(logx.LevelWarn)
	t.Cleanup(func() { logx.SetLevel(logx.LevelInfo) })

	logx.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	logx.Warnf("visible %d", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "visible 2", line["message"])
	assert.Contains(t, line, "time")
}
