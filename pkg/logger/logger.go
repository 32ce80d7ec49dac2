package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

// NewLogger builds the process-wide production logger.
func NewLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}

// WithRequestID annotates a logger with the request ID assigned by the HTTP layer.
func WithRequestID(logger *zap.Logger, requestID string) *zap.Logger {
	if requestID == "" {
		return logger
	}
	return logger.With(zap.String("request_id", requestID))
}
