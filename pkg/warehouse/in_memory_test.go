// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package warehouse

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rideshare-devops/booking-loader/pkg/booking"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/testutil"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse/warehouseiface"
)

func testBatch(t *testing.T, objectName string, rows int) *booking.Batch {
	batch := booking.NewBatch(objectName)
	for i := 0; i < rows; i++ {
		fields := testutil.ValidBookingRowFields(fmt.Sprintf("CNR%07d", i))
		record, err := booking.ParseRow(fields, i+2)
		if err != nil {
			t.Fatal(err)
		}
		batch.Append(record)
	}
	return batch
}

func TestInMemoryWarehouse_InsertBatch(t *testing.T) {
	assert := assert.New(t)

	wh := NewInMemoryWarehouse()
	wh.Open()
	defer wh.Close()

	assert.Equal("in_memory", wh.GetID())

	batch := testBatch(t, "bookings/day.csv", 3)

	status, err := wh.InsertBatch(context.Background(), batch)
	assert.Nil(err)
	assert.Equal(warehouseiface.InsertApplied, status)
	assert.Equal(1, wh.BatchCount())
	assert.Equal(int64(3), wh.RowCount())
	assert.Equal(3, len(wh.Rows(batch.ID)))
}

func TestInMemoryWarehouse_InsertBatchConflict(t *testing.T) {
	assert := assert.New(t)

	wh := NewInMemoryWarehouse()

	batch := testBatch(t, "bookings/day.csv", 3)

	_, err := wh.InsertBatch(context.Background(), batch)
	assert.Nil(err)

	status, err := wh.InsertBatch(context.Background(), batch)
	assert.Nil(err)
	assert.Equal(warehouseiface.InsertConflictIgnored, status)
	assert.Equal(int64(3), wh.RowCount())
}

func TestInMemoryWarehouse_InsertBatchConcurrent(t *testing.T) {
	assert := assert.New(t)

	wh := NewInMemoryWarehouse()
	batch := testBatch(t, "bookings/day.csv", 5)

	const inserts = 20
	applied := make([]bool, inserts)

	var wg sync.WaitGroup
	for i := 0; i < inserts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, err := wh.InsertBatch(context.Background(), batch)
			if err == nil && status == warehouseiface.InsertApplied {
				applied[i] = true
			}
		}(i)
	}
	wg.Wait()

	var count int
	for _, a := range applied {
		if a {
			count++
		}
	}
	assert.Equal(1, count)
	assert.Equal(int64(5), wh.RowCount())
}

func TestInMemoryWarehouse_SetFailWith(t *testing.T) {
	assert := assert.New(t)

	wh := NewInMemoryWarehouse()
	wh.SetFailWith(&models.WarehouseUnavailableError{Err: fmt.Errorf("backend error")})

	_, err := wh.InsertBatch(context.Background(), testBatch(t, "bookings/day.csv", 1))
	assert.NotNil(err)
	assert.True(models.IsRetryable(err))
	assert.Equal(0, wh.BatchCount())
}

func TestInMemoryWarehouse_CancelledContext(t *testing.T) {
	assert := assert.New(t)

	wh := NewInMemoryWarehouse()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wh.InsertBatch(ctx, testBatch(t, "bookings/day.csv", 1))
	assert.NotNil(err)
	assert.True(models.IsRetryable(err))
	assert.Equal(0, wh.BatchCount())
}
