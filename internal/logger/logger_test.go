package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	_ = Close()
	instance = nil
	once = sync.Once{}
	t.Cleanup(func() {
		_ = Close()
		instance = nil
		once = sync.Once{}
	})
}

func TestMemoryOnlyLogger(t *testing.T) {
	reset(t)
	require.NoError(t, Init("", false))

	Log("hello %s", "world")
	LogWarn("careful")
	LogError("SAVE", "/tmp/x", errors.New("boom"))

	logs := GetLogs()
	require.Len(t, logs, 3)
	assert.Equal(t, "[INFO] hello world", logs[0].Message)
	assert.Equal(t, "INFO", logs[0].Level)
	assert.Equal(t, "[WARN] careful", logs[1].Message)
	assert.Equal(t, "[ERROR] SAVE: /tmp/x - boom", logs[2].Message)
	assert.Equal(t, "ERROR", logs[2].Level)
}

func TestFileSinkReceivesEntries(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "logs", "gam.log")
	require.NoError(t, Init(path, false))

	Log("switched to %s", "work")
	LogFileWrite("/home/me/.ssh/config")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[INFO] switched to work")
	assert.Contains(t, out, "[FILE_WRITE] /home/me/.ssh/config")
}

func TestDebugEntriesDroppedUnlessEnabled(t *testing.T) {
	reset(t)
	require.NoError(t, Init("", false))
	LogFileOpen("/a")
	assert.Empty(t, GetLogs())

	reset(t)
	require.NoError(t, Init("", true))
	LogFileOpen("/a")
	logs := GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "[FILE_OPEN] /a", logs[0].Message)
	assert.Equal(t, "DEBUG", logs[0].Level)
}

func TestBufferIsBounded(t *testing.T) {
	reset(t)
	EnsureInit()

	for i := 0; i < maxBufferSize+10; i++ {
		Log("entry %d", i)
	}

	logs := GetLogs()
	require.Len(t, logs, maxBufferSize)
	assert.Equal(t, "[INFO] entry 10", logs[0].Message)
	assert.True(t, strings.HasSuffix(logs[len(logs)-1].Message, fmt.Sprintf("entry %d", maxBufferSize+9)))
}
