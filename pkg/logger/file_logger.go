package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFileLogger returns a JSON zap logger writing to a rotated file. It is
// used for the provider request log, kept apart from the service log.
func NewFileLogger(filePath string) *zap.Logger {
	return newFileLogger(zapcore.AddSync(rotator(filePath)))
}

func newFileLogger(ws zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		zap.InfoLevel,
	)
	return zap.New(core)
}
