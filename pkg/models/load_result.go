// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package models

import (
	"fmt"
	"time"
)

// LoadStatus classifies the terminal outcome of one load attempt
type LoadStatus string

const (
	// LoadSuccess means every parsed row was durably inserted
	LoadSuccess LoadStatus = "success"

	// LoadPartialSuccess means the valid rows were inserted but one or
	// more rows failed validation and were rejected
	LoadPartialSuccess LoadStatus = "partial_success"

	// LoadRetryable means a transient condition stopped the load; the
	// delivery mechanism should redeliver the event
	LoadRetryable LoadStatus = "retryable"

	// LoadPermanent means the load can never succeed for this object
	// and the event must not be redelivered
	LoadPermanent LoadStatus = "permanent"
)

// RejectedRecord is a source row that failed schema validation,
// retained with its provenance for operator inspection. It is never
// loaded into the warehouse.
type RejectedRecord struct {
	// Line is the 1-based line number within the source object,
	// counting the header row as line 1
	Line int

	Reason string
	Raw    string
}

func (r *RejectedRecord) String() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Reason)
}

// LoadResult summarises one load attempt for an object. Every terminal
// result carries a classification and the affected row counts; nothing
// is silently dropped.
type LoadResult struct {
	Status     LoadStatus
	ObjectName string
	BatchID    string

	RowsLoaded int64
	Rejected   []*RejectedRecord

	// Replayed is set when the warehouse reported the batch identifier
	// as already committed and the insert was a no-op
	Replayed bool

	// Quarantined is set when the object was moved to the dead-letter
	// location after a permanent failure
	Quarantined bool

	// Err carries the object-level failure for retryable and permanent
	// results; row-level failures live in Rejected instead
	Err error

	TimeStarted  time.Time
	TimeFinished time.Time
}

// NewLoadResult builds a terminal result for a load attempt
func NewLoadResult(status LoadStatus, objectName string, batchID string, timeStarted time.Time) *LoadResult {
	return &LoadResult{
		Status:       status,
		ObjectName:   objectName,
		BatchID:      batchID,
		TimeStarted:  timeStarted,
		TimeFinished: time.Now().UTC(),
	}
}

// NewLoadFailure builds a terminal result for a failed load attempt
func NewLoadFailure(status LoadStatus, err error, objectName string, batchID string, timeStarted time.Time) *LoadResult {
	r := NewLoadResult(status, objectName, batchID, timeStarted)
	r.Err = err
	return r
}

// RowsRejected returns the number of rows that failed validation
func (r *LoadResult) RowsRejected() int64 {
	return int64(len(r.Rejected))
}

// Retry reports whether the caller should surface an error to the
// delivery mechanism so that the event is redelivered
func (r *LoadResult) Retry() bool {
	return r.Status == LoadRetryable
}

// Duration returns how long the load attempt took end to end
func (r *LoadResult) Duration() time.Duration {
	return r.TimeFinished.Sub(r.TimeStarted)
}

func (r *LoadResult) String() string {
	str := fmt.Sprintf(
		"Status:%s,Object:%s,BatchID:%s,RowsLoaded:%d,RowsRejected:%d,Replayed:%t,Duration:%v",
		r.Status,
		r.ObjectName,
		r.BatchID,
		r.RowsLoaded,
		r.RowsRejected(),
		r.Replayed,
		r.Duration(),
	)
	if r.Err != nil {
		str = fmt.Sprintf("%s,Error:%s", str, r.Err.Error())
	}
	return str
}
