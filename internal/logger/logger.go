package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxBufferSize = 1000

var (
	instance *Logger
	once     sync.Once
)

type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// Logger keeps the most recent entries in memory for the logs view and
// mirrors them to a zap file sink when one is configured.
type Logger struct {
	file    *os.File
	zap     *zap.Logger
	mu      sync.Mutex
	buffer  []LogEntry
	enabled bool
	debug   bool
}

// Init opens logPath for appending and routes every entry to it. An empty
// path keeps the logger memory-only.
func Init(logPath string, debug bool) error {
	var initErr error
	once.Do(func() {
		if logPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			return
		}

		instance = newLogger(zapcore.AddSync(file), debug)
		instance.file = file
	})

	if instance == nil {
		instance = &Logger{
			buffer: make([]LogEntry, 0, maxBufferSize),
			debug:  debug,
		}
	}

	return initErr
}

func newLogger(sink zapcore.WriteSyncer, debug bool) *Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)

	return &Logger{
		zap:     zap.New(core),
		buffer:  make([]LogEntry, 0, maxBufferSize),
		enabled: true,
		debug:   debug,
	}
}

func EnsureInit() {
	if instance == nil {
		instance = &Logger{
			buffer: make([]LogEntry, 0, maxBufferSize),
		}
	}
}

func Close() error {
	if instance == nil {
		return nil
	}
	if instance.zap != nil {
		_ = instance.zap.Sync()
	}
	if instance.file != nil {
		return instance.file.Close()
	}
	return nil
}

func record(level zapcore.Level, message string) {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if level == zapcore.DebugLevel && !instance.debug {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level.CapitalString(),
		Message:   message,
	}
	if len(instance.buffer) >= maxBufferSize {
		instance.buffer = instance.buffer[1:]
	}
	instance.buffer = append(instance.buffer, entry)

	if instance.enabled && instance.zap != nil {
		if ce := instance.zap.Check(level, message); ce != nil {
			ce.Write()
		}
	}
}

func GetLogs() []LogEntry {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	logs := make([]LogEntry, len(instance.buffer))
	copy(logs, instance.buffer)
	return logs
}

func LogFileOpen(path string) {
	record(zapcore.DebugLevel, fmt.Sprintf("[FILE_OPEN] %s", path))
}

func LogFileWrite(path string) {
	record(zapcore.InfoLevel, fmt.Sprintf("[FILE_WRITE] %s", path))
}

func LogError(operation, path string, err error) {
	record(zapcore.ErrorLevel, fmt.Sprintf("[ERROR] %s: %s - %v", operation, path, err))
}

func LogWarn(message string, args ...interface{}) {
	record(zapcore.WarnLevel, fmt.Sprintf("[WARN] "+message, args...))
}

func Log(message string, args ...interface{}) {
	record(zapcore.InfoLevel, fmt.Sprintf("[INFO] "+message, args...))
}
