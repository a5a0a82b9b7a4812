// Package logging sets up the process-wide zap logger and adapts it to the framework's Printf-style
// Logger, so that request logs can go both to a test's captured output and to the run log.
package logging

import (
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the run log.
type Config struct {
	Level string
	Dev   bool
}

// ConfigFromEnv reads LOG_LEVEL and LOG_DEV.
func ConfigFromEnv() Config {
	dev := os.Getenv("LOG_DEV") == "1"
	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		if dev {
			lvl = "debug"
		} else {
			lvl = "warn"
		}
	}
	return Config{Level: lvl, Dev: dev}
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init builds the run logger. Output goes to stderr so that it does not interleave with the test
// report on stdout. Every entry is tagged with a fresh run ID.
func Init(cfg Config) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)
	var logger *zap.Logger
	if cfg.Dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		l, err := c.Build()
		if err != nil {
			return nil, err
		}
		logger = l
	} else {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stderr), lvl)
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return logger.With(zap.String("run", uuid.NewString())), nil
}

// DebugPrinter adapts a zap logger to framework.Logger, logging every message at debug level.
type DebugPrinter struct {
	sugar *zap.SugaredLogger
}

func NewDebugPrinter(logger *zap.Logger) *DebugPrinter {
	return &DebugPrinter{sugar: logger.Sugar()}
}

func (p *DebugPrinter) Printf(message string, args ...interface{}) {
	p.sugar.Debugf(message, args...)
}
