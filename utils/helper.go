package utils

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/habitamx/listings_backend/config"
	"github.com/shopspring/decimal"
)

var nonNumericPrice = regexp.MustCompile(`[^0-9.]`)

func IsValidURL(value string) bool {
	pattern := `^https?://[^\s/$.?#].[^\s]*$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(value)
}

// ProcessValidationErrors maps binding failures to field->tag pairs.
// JSON syntax errors and other non-validator errors come through the
// same ShouldBindJSON path, so they get a generic entry instead.
func ProcessValidationErrors(err error) map[string]string {

	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorResponse["body"] = "malformed request body"
		return errorResponse
	}

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ParsePrice parses a price cell, tolerating currency symbols and
// thousands separators ("$1,500,000.00" -> 1500000.00).
func ParsePrice(value string) decimal.Decimal {
	cleaned := nonNumericPrice.ReplaceAllString(strings.ReplaceAll(value, ",", ""), "")
	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// ParseIntOrZero mirrors the tolerant numeric handling of spreadsheet
// cells: empty or malformed values count as zero.
func ParseIntOrZero(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// ImportLock obtains a short best-effort lock to serialize imports for
// one user. Correctness must not depend on it; concurrent imports by
// different users only risk duplicate catalog auto-creation.
func ImportLock(ctx context.Context, userId string, moduleName string, functionName string) (*redislock.Lock, error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return nil, nil
	}
	lockKey := fmt.Sprintf("import:%s", userId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(ctx, logger, moduleName, functionName, "Could not obtain import lock", userId, err)
		return nil, errors.New("another import is already running for this user")
	} else if err != nil {
		config.LogError(ctx, logger, moduleName, functionName, "Error obtaining import lock", userId, err)
		return nil, nil
	}
	return lock, nil
}
