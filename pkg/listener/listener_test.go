// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package listener

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rideshare-devops/booking-loader/pkg/loader"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/objectstore"
	"github.com/rideshare-devops/booking-loader/pkg/quarantine"
	"github.com/rideshare-devops/booking-loader/pkg/testutil"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse"
)

const (
	testBucket       = "rideshare-bookings-raw"
	testQuarantine   = "rideshare-bookings-quarantine"
	testMaxSizeBytes = int64(0)
)

func newTestListener(t *testing.T, store *objectstore.InMemoryObjectStore, wh *warehouse.InMemoryWarehouse) *Listener {
	ldr, err := loader.New(store, wh, testBucket, testMaxSizeBytes)
	if err != nil {
		t.Fatal(err)
	}
	lst, err := New(ldr, testBucket)
	if err != nil {
		t.Fatal(err)
	}
	return lst
}

func TestOnObjectFinalized_Success(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()
	store.PutObject(testBucket, "bookings/day.csv", testutil.BookingCSV(
		testutil.ValidBookingRow("CNR0000001"),
		testutil.ValidBookingRow("CNR0000002"),
	))

	lst := newTestListener(t, store, wh)
	res := lst.OnObjectFinalized(context.Background(), testutil.GetTestIngestionEvent(testBucket, "bookings/day.csv"))

	assert.Equal(models.LoadSuccess, res.Status)
	assert.Equal(int64(2), res.RowsLoaded)
	assert.Equal(1, wh.BatchCount())
}

func TestOnObjectFinalized_MisroutedEvent(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()

	lst := newTestListener(t, store, wh)
	res := lst.OnObjectFinalized(context.Background(), testutil.GetTestIngestionEvent("some-other-bucket", "bookings/day.csv"))

	assert.Equal(models.LoadPermanent, res.Status)

	var misroutedErr *models.MisroutedEventError
	assert.ErrorAs(res.Err, &misroutedErr)

	// A misrouted event must be rejected before any fetch
	assert.Equal(int64(0), store.GetCalls())
	assert.Equal(0, wh.BatchCount())
}

func TestOnObjectFinalized_RetryablePropagates(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()
	wh.SetFailWith(&models.WarehouseUnavailableError{Err: fmt.Errorf("backend error")})
	store.PutObject(testBucket, "bookings/day.csv", testutil.BookingCSV(testutil.ValidBookingRow("CNR0000001")))

	lst := newTestListener(t, store, wh)
	res := lst.OnObjectFinalized(context.Background(), testutil.GetTestIngestionEvent(testBucket, "bookings/day.csv"))

	assert.Equal(models.LoadRetryable, res.Status)
	assert.True(res.Retry())
	assert.False(res.Quarantined)
}

func TestOnObjectFinalized_QuarantinesContentFailure(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()
	store.PutObject(testBucket, "bookings/garbage.csv", testutil.BookingCSV(
		testutil.MalformedBookingRow("CNR0000001"),
	))

	q, err := quarantine.New(store, testQuarantine)
	if err != nil {
		t.Fatal(err)
	}

	lst := newTestListener(t, store, wh)
	lst.SetQuarantine(q)

	res := lst.OnObjectFinalized(context.Background(), testutil.GetTestIngestionEvent(testBucket, "bookings/garbage.csv"))

	assert.Equal(models.LoadPermanent, res.Status)
	assert.True(res.Quarantined)
	assert.False(store.HasObject(testBucket, "bookings/garbage.csv"))
	assert.True(store.HasObject(testQuarantine, "quarantined/bookings/garbage.csv"))
}

func TestOnObjectFinalized_NoQuarantineForVanishedObject(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()

	q, err := quarantine.New(store, testQuarantine)
	if err != nil {
		t.Fatal(err)
	}

	lst := newTestListener(t, store, wh)
	lst.SetQuarantine(q)

	res := lst.OnObjectFinalized(context.Background(), testutil.GetTestIngestionEvent(testBucket, "bookings/vanished.csv"))

	assert.Equal(models.LoadPermanent, res.Status)
	assert.False(res.Quarantined)
	assert.False(store.HasObject(testQuarantine, "quarantined/bookings/vanished.csv"))
}

func TestOnObjectFinalized_RedeliveryIsReplay(t *testing.T) {
	assert := assert.New(t)

	store := objectstore.NewInMemoryObjectStore()
	wh := warehouse.NewInMemoryWarehouse()
	store.PutObject(testBucket, "bookings/day.csv", testutil.BookingCSV(testutil.ValidBookingRow("CNR0000001")))

	lst := newTestListener(t, store, wh)

	event := testutil.GetTestIngestionEvent(testBucket, "bookings/day.csv")

	first := lst.OnObjectFinalized(context.Background(), event)
	assert.Equal(models.LoadSuccess, first.Status)
	assert.False(first.Replayed)

	// Duplicate delivery of the same notification is a safe no-op
	second := lst.OnObjectFinalized(context.Background(), event)
	assert.Equal(models.LoadSuccess, second.Status)
	assert.True(second.Replayed)

	assert.Equal(1, wh.BatchCount())
	assert.Equal(int64(1), wh.RowCount())
}
