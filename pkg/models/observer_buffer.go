// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package models

import (
	"fmt"
	"time"

	"github.com/rideshare-devops/booking-loader/pkg/common"
)

// ObserverBuffer aggregates load results over a reporting window
type ObserverBuffer struct {
	LoadResults int64

	LoadsSucceeded int64
	LoadsPartial   int64
	LoadsRetryable int64
	LoadsPermanent int64
	LoadsReplayed  int64

	RowsLoaded   int64
	RowsRejected int64

	MaxLoadLatency time.Duration
	MinLoadLatency time.Duration
	SumLoadLatency time.Duration
}

// Append adds a load result onto the buffer
func (b *ObserverBuffer) Append(res *LoadResult) {
	if res == nil {
		return
	}

	b.LoadResults++

	switch res.Status {
	case LoadSuccess:
		b.LoadsSucceeded++
	case LoadPartialSuccess:
		b.LoadsPartial++
	case LoadRetryable:
		b.LoadsRetryable++
	case LoadPermanent:
		b.LoadsPermanent++
	}

	if res.Replayed {
		b.LoadsReplayed++
	}

	b.RowsLoaded += res.RowsLoaded
	b.RowsRejected += res.RowsRejected()

	latency := res.Duration()
	if b.MaxLoadLatency < latency {
		b.MaxLoadLatency = latency
	}
	if b.MinLoadLatency > latency || b.MinLoadLatency == time.Duration(0) {
		b.MinLoadLatency = latency
	}
	b.SumLoadLatency += latency
}

// GetAvgLoadLatency returns the average load latency in the buffer
func (b *ObserverBuffer) GetAvgLoadLatency() time.Duration {
	return common.GetAverageFromDuration(b.SumLoadLatency, b.LoadResults)
}

func (b *ObserverBuffer) String() string {
	return fmt.Sprintf(
		"LoadResults:%d,Succeeded:%d,Partial:%d,Retryable:%d,Permanent:%d,Replayed:%d,RowsLoaded:%d,RowsRejected:%d,MaxLoadLatency:%v,MinLoadLatency:%v,AvgLoadLatency:%v",
		b.LoadResults,
		b.LoadsSucceeded,
		b.LoadsPartial,
		b.LoadsRetryable,
		b.LoadsPermanent,
		b.LoadsReplayed,
		b.RowsLoaded,
		b.RowsRejected,
		b.MaxLoadLatency,
		b.MinLoadLatency,
		b.GetAvgLoadLatency(),
	)
}
