package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"barpos/pkg/config"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the process logger from configuration. Development env
// gets the human-readable encoder; everything else logs production JSON.
func InitLogger(cfg *config.Config) {
	once.Do(func() {
		var zcfg zap.Config
		if cfg.Server.Env == "development" {
			zcfg = zap.NewDevelopmentConfig()
		} else {
			zcfg = zap.NewProductionConfig()
		}
		zcfg.OutputPaths = []string{"stdout"}
		if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			zcfg.Level = zap.NewAtomicLevelAt(level)
		}
		logger, err := zcfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
}

// GetLogger returns the process logger, building a production default if
// InitLogger was never called.
func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
