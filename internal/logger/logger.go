package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op until Init runs, so packages can log from tests.
var Log = zap.NewNop().Sugar()

// Init builds the process-wide logger. Output goes to stderr; stdout is
// reserved for command output such as `set --dry-run`. A non-empty logPath
// appends plain (uncolored) lines to that file instead.
func Init(verbose bool, logPath string) {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	sink, colored := openSink(logPath)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(colored)), sink, level)
	Log = zap.New(core).Sugar()
}

func encoderConfig(colored bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeCaller = nil
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if colored {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

// openSink falls back to stderr when the log file cannot be opened.
func openSink(logPath string) (zapcore.WriteSyncer, bool) {
	if logPath == "" {
		return zapcore.AddSync(os.Stderr), true
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", logPath, err)
		return zapcore.AddSync(os.Stderr), true
	}
	return zapcore.AddSync(f), false
}

func Sync() {
	_ = Log.Sync()
}
