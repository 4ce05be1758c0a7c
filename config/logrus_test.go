package config_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"github.com/sirupsen/logrus"
)

func TestLogErrorIncludesRequestIds(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(&buf)

	ctx := utils.SetCorrelationIdInContext(context.Background(), "cid-123")
	ctx = utils.SetUserIdInContext(ctx, "tester")

	config.LogError(ctx, logger, "config", "TestLogErrorIncludesRequestIds", "unit", nil, errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["correlation_id"] != "cid-123" {
		t.Fatalf("correlation_id = %v, want cid-123", entry["correlation_id"])
	}
	if entry["user_id"] != "tester" {
		t.Fatalf("user_id = %v, want tester", entry["user_id"])
	}
	if entry["msg"] != "boom" {
		t.Fatalf("msg = %v, want boom", entry["msg"])
	}
}

func TestLogErrorWithoutRequestIds(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(&buf)

	config.LogError(context.Background(), logger, "config", "TestLogErrorWithoutRequestIds", "unit", "some data", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if _, ok := entry["correlation_id"]; ok {
		t.Fatalf("unexpected correlation_id: %v", entry["correlation_id"])
	}
	if entry["data"] != "some data" {
		t.Fatalf("data = %v, want some data", entry["data"])
	}
}
