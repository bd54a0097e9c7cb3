package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. APP_ENV=development switches to the
// human-readable console encoder.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	if env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
