package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warn    *log.Logger
	Debug   *log.Logger
	Verbose *log.Logger
	Error   *log.Logger
	Always  *log.Logger // Always logs regardless of log level

	// Current log level for filtering
	currentLogLevel string
)

func init() {
	// Usable before Init: everything is discarded.
	InitWithWriter("error", io.Discard)
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "greekmap.log")
}

// InitWithConfig logs to logFilePath, or to stderr when the path is empty.
func InitWithConfig(logLevel, logFilePath string) error {
	if logFilePath == "" {
		InitWithWriter(logLevel, os.Stderr)
		return nil
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	InitWithWriter(logLevel, logFile)
	Error.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return nil
}

// InitWithWriter sends every enabled level to out.
func InitWithWriter(logLevel string, out io.Writer) {
	currentLogLevel = logLevel

	// Create null writer for disabled log levels
	nullWriter := io.Discard

	Info = log.New(getWriter("info", out, nullWriter), "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(getWriter("warn", out, nullWriter), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(getWriter("debug", out, nullWriter), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Verbose = log.New(getWriter("verbose", out, nullWriter), "VERBOSE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(out, "ALWAYS: ", log.Ldate|log.Ltime) // bypasses level filtering
}

// Level returns the active level name.
func Level() string {
	return currentLogLevel
}

// getWriter returns the appropriate writer based on log level
func getWriter(level string, activeWriter, disabledWriter io.Writer) io.Writer {
	if shouldLog(level) {
		return activeWriter
	}
	return disabledWriter
}

// shouldLog determines if a log level should be active
func shouldLog(level string) bool {
	levels := map[string]int{
		"error":   0,
		"warn":    1,
		"info":    2,
		"debug":   3,
		"verbose": 4,
	}

	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
