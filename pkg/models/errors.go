// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package models

import (
	"context"
	"errors"
	"fmt"
)

// MisroutedEventError is returned when a notification arrives for a
// bucket other than the configured source bucket. Never retried.
type MisroutedEventError struct {
	Bucket       string
	SourceBucket string
}

func (e *MisroutedEventError) Error() string {
	return fmt.Sprintf("event for bucket '%s' does not match configured source bucket '%s'", e.Bucket, e.SourceBucket)
}

// ObjectNotFoundError is returned when the object named by a
// notification no longer exists at fetch time. There is nothing to
// load so the event is terminal, but it is benign rather than a fault.
type ObjectNotFoundError struct {
	Bucket     string
	ObjectName string
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("object '%s' not found in bucket '%s'", e.ObjectName, e.Bucket)
}

// SizeLimitExceededError is returned before any bytes are read when an
// object exceeds the configured maximum size. The whole object is
// rejected permanently.
type SizeLimitExceededError struct {
	ObjectName   string
	SizeBytes    int64
	MaxSizeBytes int64
}

func (e *SizeLimitExceededError) Error() string {
	return fmt.Sprintf("object '%s' is %d bytes which exceeds the configured maximum of %d bytes", e.ObjectName, e.SizeBytes, e.MaxSizeBytes)
}

// WarehouseUnavailableError wraps a transient warehouse failure and
// signals the caller that the event should be redelivered.
type WarehouseUnavailableError struct {
	Err error
}

func (e *WarehouseUnavailableError) Error() string {
	return fmt.Sprintf("warehouse unavailable: %s", e.Err.Error())
}

func (e *WarehouseUnavailableError) Unwrap() error {
	return e.Err
}

// QuotaExceededError wraps a warehouse throttling failure and signals
// the caller that the event should be redelivered.
type QuotaExceededError struct {
	Err error
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("warehouse quota exceeded: %s", e.Err.Error())
}

func (e *QuotaExceededError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether an error is a transient condition that
// the upstream delivery mechanism should redeliver for, as opposed to
// a permanent condition that retrying cannot fix.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var warehouseErr *WarehouseUnavailableError
	if errors.As(err, &warehouseErr) {
		return true
	}
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return true
	}

	// A cancelled invocation must not mark the event as handled; the
	// redelivery gets a fresh attempt.
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
