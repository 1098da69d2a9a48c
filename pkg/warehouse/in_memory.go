// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package warehouse

import (
	"context"
	"sync"

	"github.com/rideshare-devops/booking-loader/pkg/booking"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse/warehouseiface"
)

// InMemoryWarehouse is a warehouse implementation useful for testing
// the pipeline without a live table. The batch map is guarded by a
// single mutex so the insert-or-ignore contract holds under
// concurrent inserts of the same batch identifier.
type InMemoryWarehouse struct {
	mu      sync.Mutex
	batches map[string][]*booking.Record

	failWith error
}

// NewInMemoryWarehouse creates an empty in-memory warehouse
func NewInMemoryWarehouse() *InMemoryWarehouse {
	return &InMemoryWarehouse{
		batches: map[string][]*booking.Record{},
	}
}

// Open opens a pipe to the table
func (w *InMemoryWarehouse) Open() {}

// InsertBatch commits the batch unless one with the same identifier is
// already present
func (w *InMemoryWarehouse) InsertBatch(ctx context.Context, batch *booking.Batch) (warehouseiface.InsertStatus, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failWith != nil {
		return warehouseiface.InsertApplied, w.failWith
	}

	if err := ctx.Err(); err != nil {
		return warehouseiface.InsertApplied, err
	}

	if _, ok := w.batches[batch.ID]; ok {
		return warehouseiface.InsertConflictIgnored, nil
	}

	records := make([]*booking.Record, len(batch.Records))
	copy(records, batch.Records)
	w.batches[batch.ID] = records

	return warehouseiface.InsertApplied, nil
}

// Close stops the table
func (w *InMemoryWarehouse) Close() {}

// GetID returns the identifier for this warehouse
func (w *InMemoryWarehouse) GetID() string {
	return "in_memory"
}

// SetFailWith forces every subsequent insert to fail with the given
// error, which lets tests simulate an unavailable warehouse
func (w *InMemoryWarehouse) SetFailWith(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failWith = err
}

// BatchCount returns how many distinct batches are committed
func (w *InMemoryWarehouse) BatchCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.batches)
}

// Rows returns the committed records for a batch identifier
func (w *InMemoryWarehouse) Rows(batchID string) []*booking.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.batches[batchID]
}

// RowCount returns the total number of committed rows across batches
func (w *InMemoryWarehouse) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	var total int64
	for _, records := range w.batches {
		total += int64(len(records))
	}
	return total
}
