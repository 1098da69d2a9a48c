// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package observer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// --- Test StatsReceiver

type testStatsReceiver struct {
	mu      sync.Mutex
	buffers []*models.ObserverBuffer
}

func (s *testStatsReceiver) Send(b *models.ObserverBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers = append(s.buffers, b)
}

func (s *testStatsReceiver) totals() (loads int64, rows int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buffers {
		loads += b.LoadResults
		rows += b.RowsLoaded
	}
	return loads, rows
}

// --- Tests

func TestObserver_FlushesOnStop(t *testing.T) {
	assert := assert.New(t)

	sr := &testStatsReceiver{}
	o := New(sr, time.Millisecond, time.Hour)
	assert.NotNil(o)

	o.Start()

	res := models.NewLoadResult(models.LoadSuccess, "bookings/day.csv", "abc123", time.Now().UTC())
	res.RowsLoaded = 42
	o.LoadCompleted(res)
	o.LoadCompleted(models.NewLoadResult(models.LoadPartialSuccess, "bookings/mixed.csv", "def456", time.Now().UTC()))

	time.Sleep(50 * time.Millisecond)
	o.Stop()

	loads, rows := sr.totals()
	assert.Equal(int64(2), loads)
	assert.Equal(int64(42), rows)
}

func TestObserver_PeriodicFlush(t *testing.T) {
	assert := assert.New(t)

	sr := &testStatsReceiver{}
	o := New(sr, time.Millisecond, 20*time.Millisecond)

	o.Start()
	o.LoadCompleted(models.NewLoadResult(models.LoadSuccess, "bookings/day.csv", "abc123", time.Now().UTC()))

	time.Sleep(100 * time.Millisecond)
	o.Stop()

	sr.mu.Lock()
	flushes := len(sr.buffers)
	sr.mu.Unlock()
	assert.True(flushes >= 2)

	loads, _ := sr.totals()
	assert.Equal(int64(1), loads)
}

func TestObserver_StartIdempotent(t *testing.T) {
	assert := assert.New(t)

	o := New(nil, time.Millisecond, time.Hour)
	o.Start()
	o.Start()
	assert.NotPanics(func() {
		o.Stop()
	})
}

func TestObserver_StopWithoutStart(t *testing.T) {
	assert := assert.New(t)

	o := New(nil, time.Millisecond, time.Hour)
	assert.NotPanics(func() {
		o.Stop()
	})
}
