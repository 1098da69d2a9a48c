// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package models

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert := assert.New(t)

	assert.False(IsRetryable(nil))
	assert.False(IsRetryable(fmt.Errorf("boom")))

	assert.False(IsRetryable(&MisroutedEventError{Bucket: "b", SourceBucket: "src"}))
	assert.False(IsRetryable(&ObjectNotFoundError{Bucket: "b", ObjectName: "o"}))
	assert.False(IsRetryable(&SizeLimitExceededError{ObjectName: "o", SizeBytes: 2, MaxSizeBytes: 1}))

	assert.True(IsRetryable(&WarehouseUnavailableError{Err: fmt.Errorf("backend error")}))
	assert.True(IsRetryable(&QuotaExceededError{Err: fmt.Errorf("rate limit exceeded")}))

	assert.True(IsRetryable(context.DeadlineExceeded))
	assert.True(IsRetryable(context.Canceled))
}

func TestIsRetryable_Wrapped(t *testing.T) {
	assert := assert.New(t)

	wrapped := errors.Wrap(&WarehouseUnavailableError{Err: fmt.Errorf("backend error")}, "Failed to insert batch")
	assert.True(IsRetryable(wrapped))

	wrapped = errors.Wrap(&SizeLimitExceededError{ObjectName: "o", SizeBytes: 2, MaxSizeBytes: 1}, "Failed to fetch object")
	assert.False(IsRetryable(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert := assert.New(t)

	misrouted := &MisroutedEventError{Bucket: "other", SourceBucket: "raw"}
	assert.Equal("event for bucket 'other' does not match configured source bucket 'raw'", misrouted.Error())

	notFound := &ObjectNotFoundError{Bucket: "raw", ObjectName: "day.csv"}
	assert.Equal("object 'day.csv' not found in bucket 'raw'", notFound.Error())

	tooBig := &SizeLimitExceededError{ObjectName: "day.csv", SizeBytes: 20, MaxSizeBytes: 10}
	assert.Equal("object 'day.csv' is 20 bytes which exceeds the configured maximum of 10 bytes", tooBig.Error())

	inner := fmt.Errorf("backend error")
	unavailable := &WarehouseUnavailableError{Err: inner}
	assert.Equal("warehouse unavailable: backend error", unavailable.Error())
	assert.Equal(inner, errors.Unwrap(unavailable))

	quota := &QuotaExceededError{Err: inner}
	assert.Equal("warehouse quota exceeded: backend error", quota.Error())
	assert.Equal(inner, errors.Unwrap(quota))
}
