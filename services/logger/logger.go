package logger

import (
	"log"
	"os"
)

// Level định nghĩa mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger interface cho các service cần ghi log theo mức
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger ghi log ra stderr qua log chuẩn
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger tạo logger với mức tối thiểu cho trước
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *DefaultLogger) logf(at Level, tag, format string, v ...interface{}) {
	if l.level <= at {
		l.out.Printf(tag+format, v...)
	}
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.logf(InfoLevel, "[INFO] ", format, v...)
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.logf(ErrorLevel, "[ERROR] ", format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.logf(DebugLevel, "[DEBUG] ", format, v...)
}
