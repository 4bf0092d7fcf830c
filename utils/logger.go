package utils

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	initLoggers sync.Once
)

// setup mở file log theo ngày trong thư mục LOG_DIR (mặc định logs/)
func setup() {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}

	name := fmt.Sprintf("%s/app-%s.log", dir, time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}

	infoLogger = log.New(logFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger = log.New(logFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// LogInfo ghi log thông tin vào file log ngày hiện tại
func LogInfo(format string, v ...interface{}) {
	initLoggers.Do(setup)
	infoLogger.Printf(format, v...)
}

// LogError ghi log lỗi vào file log ngày hiện tại
func LogError(format string, v ...interface{}) {
	initLoggers.Do(setup)
	errorLogger.Printf(format, v...)
}
