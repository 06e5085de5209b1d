package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncFile struct {
	fd *os.File
}

func (s syncFile) Write(p []byte) (n int, err error) {
	return s.fd.Write(p)
}

func (s syncFile) Sync() error {
	return s.fd.Sync()
}

var level = zap.NewAtomicLevelAt(levelFromEnv())

func levelFromEnv() zapcore.Level {
	return parseLevel(os.Getenv("LOG_LEVEL"))
}

func parseLevel(s string) zapcore.Level {
	if s == "" {
		return zapcore.InfoLevel
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// SetLevel overrides the level taken from LOG_LEVEL. Unknown levels fall back to info.
func SetLevel(s string) {
	level.SetLevel(parseLevel(s))
}

func getFd() *os.File {
	logPath := os.Getenv("LOG_FILE")
	if logPath == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		panic(err)
	}
	return f
}

var encoderConfig = zapcore.EncoderConfig{
	MessageKey:     "msg",
	LevelKey:       "level",
	NameKey:        "logger",
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
}

var Logger = zap.New(zapcore.NewCore(
	zapcore.NewConsoleEncoder(encoderConfig),
	&syncFile{fd: getFd()},
	level,
)).Named("glyph-suffixer")

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}
