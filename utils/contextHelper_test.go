package utils_test

import (
	"context"
	"testing"

	"github.com/habitamx/listings_backend/utils"
)

func TestContextIdsRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := utils.GetUserIdFromContext(ctx); ok {
		t.Fatalf("unexpected user id on empty context")
	}
	if _, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		t.Fatalf("unexpected correlation id on empty context")
	}

	ctx = utils.SetUserIdInContext(ctx, "tester")
	ctx = utils.SetCorrelationIdInContext(ctx, "cid-1")

	if v, ok := utils.GetUserIdFromContext(ctx); !ok || v != "tester" {
		t.Fatalf("user id = %q, %v", v, ok)
	}
	if v, ok := utils.GetCorrelationIdFromContext(ctx); !ok || v != "cid-1" {
		t.Fatalf("correlation id = %q, %v", v, ok)
	}
}
