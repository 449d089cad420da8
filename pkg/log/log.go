package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *Logger
	once          sync.Once
)

func init() {
	once.Do(func() {
		defaultLogger = New(Options{Level: LogLevelDebug})
	})
}

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (level LogLevel) String() string {
	switch level {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	case LogLevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a log level string into a LogLevel.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLogLevel(level string) (LogLevel, error) {
	switch level {
	case "error":
		return LogLevelError, nil
	case "warn":
		return LogLevelWarn, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	case "trace":
		return LogLevelTrace, nil
	default:
		return LogLevelError, fmt.Errorf("unknown log level: %s", level)
	}
}

// Options configures a Logger.
// Output takes precedence over File. With neither set, logs go to stdout.
type Options struct {
	Level  LogLevel
	File   string
	Output io.Writer
}

type Logger struct {
	sugar *zap.SugaredLogger
	level LogLevel
}

// New builds a JSON line logger. When File is set, the file is rotated by lumberjack.
func New(opts Options) *Logger {
	var ws zapcore.WriteSyncer
	switch {
	case opts.Output != nil:
		ws = zapcore.AddSync(opts.Output)
	case opts.File != "":
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		})
	default:
		ws = zapcore.Lock(os.Stdout)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	// Level gating happens in logf so trace can sit below zap's debug.
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, zapcore.DebugLevel)

	return &Logger{
		sugar: zap.New(core).Sugar(),
		level: opts.Level,
	}
}

// SetDefaultLogger replaces the logger used by the package level functions.
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// Sync flushes the default logger.
func Sync() error {
	return defaultLogger.Sync()
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	switch level {
	case LogLevelError:
		l.sugar.Errorf(format, args...)
	case LogLevelWarn:
		l.sugar.Warnf(format, args...)
	case LogLevelInfo:
		l.sugar.Infof(format, args...)
	case LogLevelDebug:
		l.sugar.Debugf(format, args...)
	default:
		l.sugar.Debugw(fmt.Sprintf(format, args...), "trace", true)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LogLevelTrace, format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

func Trace(format string, args ...interface{}) {
	defaultLogger.Trace(format, args...)
}
