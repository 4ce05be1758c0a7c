package config

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

type contextKey string

// Request-scoped ids carried on context.Context; set by the HTTP
// middleware / handlers via the utils context helpers.
const (
	ContextKeyUserId        contextKey = "user_id"
	ContextKeyCorrelationId contextKey = "correlation_id"
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.ErrorLevel)
	logg.SetOutput(os.Stdout)
}

func LogError(ctx context.Context, logger *logrus.Logger, moduleName string, funcName string, logContext string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  logContext,
	}
	if data != nil {
		fields["data"] = data
	}
	if ctx != nil {
		if cid, ok := ctx.Value(ContextKeyCorrelationId).(string); ok && cid != "" {
			fields["correlation_id"] = cid
		}
		if userId, ok := ctx.Value(ContextKeyUserId).(string); ok && userId != "" {
			fields["user_id"] = userId
		}
	}
	logger.WithFields(fields).Error(err.Error())
}
