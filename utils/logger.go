package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitLogger builds the process logger. Production gets JSON output at the
// configured level; anything else gets a colored development console.
func InitLogger(env, level string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger = l
	zap.ReplaceGlobals(l)
}

// GetLogger returns the process logger, building a development logger if
// InitLogger has not run (keeps tests and tools working without setup).
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			l, err := zap.NewDevelopment()
			if err != nil {
				log.Fatalf("failed to initialize logger: %v", err)
			}
			logger = l
		}
	})
	return logger
}
