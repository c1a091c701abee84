package log

import (
	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// InitLogger builds the process logger. Development mode uses zap's
// human-friendly console config.
func InitLogger(dev bool) {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	Logger = l
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
