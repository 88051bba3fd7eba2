package freqgen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevelType uint8

const (
	LevelVerbose LogLevelType = 50
	LevelDebug   LogLevelType = 40
	LevelInfo    LogLevelType = 30
	LevelWarn    LogLevelType = 20
	LevelError   LogLevelType = 10
	LevelQuiet   LogLevelType = 0
)

var (
	nameToLevels = map[string]LogLevelType{
		"verbose": LevelVerbose,
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"quiet":   LevelQuiet,
	}
)

var (
	logLevel LogLevelType = LevelInfo
	logger   *zap.SugaredLogger
	// OutputDest receives progress lines and reports.
	OutputDest io.Writer = os.Stdout
)

func init() {
	SetLogOutput(os.Stdout, os.Stderr)
}

// newLogger sends errors to errOut and everything below to out.
func newLogger(out, errOut io.Writer) *zap.SugaredLogger {
	isErrorLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	isInfoLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl < zapcore.ErrorLevel
	})
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(config)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(errOut)), isErrorLevel),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), isInfoLevel),
	)
	return zap.New(core).Sugar()
}

func SetLogOutput(out, errOut io.Writer) {
	logger = newLogger(out, errOut)
}

func SetLogLevel(name string) error {
	level, ok := nameToLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return errors.Errorf("unknown log level: %s", name)
	}
	logLevel = level
	return nil
}

func GetLogLevel() LogLevelType {
	return logLevel
}

func Logf(level LogLevelType, format string, args ...interface{}) {
	if level == LevelQuiet || level > logLevel {
		return
	}
	switch level {
	case LevelError:
		logger.Errorf(format, args...)
	case LevelWarn:
		logger.Warnf(format, args...)
	case LevelInfo:
		logger.Infof(format, args...)
	default:
		logger.Debugf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	Logf(LevelError, format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logf(LevelWarn, format, args...)
}

func Infof(format string, args ...interface{}) {
	Logf(LevelInfo, format, args...)
}

func Debugf(format string, args ...interface{}) {
	Logf(LevelDebug, format, args...)
}

func Verbosef(format string, args ...interface{}) {
	Logf(LevelVerbose, format, args...)
}

func SyncLog() {
	logger.Sync()
}

func Printf(format string, args ...interface{}) {
	fmt.Fprintf(OutputDest, format, args...)
	fmt.Fprintln(OutputDest, "")
}

func EPrintf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr, "")
}
