package utils

import (
	"context"

	"github.com/habitamx/listings_backend/config"
)

// The keys live in config so LogError can read them back without an
// import cycle.

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, config.ContextKeyUserId, userId)
}

func GetUserIdFromContext(ctx context.Context) (string, bool) {
	userId, ok := ctx.Value(config.ContextKeyUserId).(string)
	return userId, ok
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, config.ContextKeyCorrelationId, correlationId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	correlationId, ok := ctx.Value(config.ContextKeyCorrelationId).(string)
	return correlationId, ok
}
