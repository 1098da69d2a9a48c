// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package warehouseiface

import (
	"context"

	"github.com/rideshare-devops/booking-loader/pkg/booking"
)

// InsertStatus is the outcome of an idempotent batch insert
type InsertStatus int

const (
	// InsertApplied means this call durably committed the batch
	InsertApplied InsertStatus = iota

	// InsertConflictIgnored means a batch with the same identifier was
	// already committed and this call was a safe no-op
	InsertConflictIgnored
)

// Warehouse describes the interface for issuing idempotent batch
// inserts into the analytics table.
//
// InsertBatch must uphold the batch-identifier contract even under
// concurrent calls for the same identifier: exactly one call commits
// the batch and every other call reports a conflict, never a duplicate
// or a partial overwrite.
type Warehouse interface {
	Open()
	InsertBatch(ctx context.Context, batch *booking.Batch) (InsertStatus, error)
	Close()
	GetID() string
}
