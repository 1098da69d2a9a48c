// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package loader

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rideshare-devops/booking-loader/pkg/booking"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/objectstore/objectstoreiface"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse/warehouseiface"
)

// Loader fetches a finalized object, parses it into typed booking
// records and issues one idempotent batch insert into the warehouse.
//
// The loader holds no state between invocations; idempotence rests
// entirely on the deterministic batch identifier and the warehouse's
// conflict detection.
type Loader struct {
	store     objectstoreiface.ObjectStore
	warehouse warehouseiface.Warehouse

	sourceBucket       string
	maxObjectSizeBytes int64

	log *log.Entry
}

// New creates a loader bound to a source bucket and a warehouse table
func New(store objectstoreiface.ObjectStore, warehouse warehouseiface.Warehouse, sourceBucket string, maxObjectSizeBytes int64) (*Loader, error) {
	if store == nil {
		return nil, errors.New("Object store is required")
	}
	if warehouse == nil {
		return nil, errors.New("Warehouse is required")
	}
	if sourceBucket == "" {
		return nil, errors.New("Source bucket is required")
	}

	return &Loader{
		store:              store,
		warehouse:          warehouse,
		sourceBucket:       sourceBucket,
		maxObjectSizeBytes: maxObjectSizeBytes,
		log:                log.WithFields(log.Fields{"name": "Loader", "bucket": sourceBucket}),
	}, nil
}

// Load runs one fetch-parse-insert pass for an object and returns the
// terminal result. Row-level failures are absorbed into the result;
// only object-level and infrastructure-level conditions change the
// classification.
func (l *Loader) Load(ctx context.Context, objectName string) *models.LoadResult {
	timeStarted := time.Now().UTC()
	batchID := booking.BatchID(objectName)

	data, err := l.store.Get(ctx, l.sourceBucket, objectName, l.maxObjectSizeBytes)
	if err != nil {
		return l.classifyFetchFailure(err, objectName, batchID, timeStarted)
	}

	batch, rejected, err := booking.ParseObject(bytes.NewReader(data), objectName)
	if err != nil {
		return models.NewLoadFailure(models.LoadPermanent, err, objectName, batchID, timeStarted)
	}

	if batch.RowCount() == 0 {
		if len(rejected) > 0 {
			res := models.NewLoadFailure(
				models.LoadPermanent,
				errors.New("every record in the object failed validation"),
				objectName,
				batchID,
				timeStarted,
			)
			res.Rejected = rejected
			return res
		}

		// Empty and header-only objects are successful no-ops
		l.log.Infof("Object '%s' contains no data rows, nothing to load", objectName)
		return models.NewLoadResult(models.LoadSuccess, objectName, batchID, timeStarted)
	}

	// Never start an insert the caller has already given up on
	if err := ctx.Err(); err != nil {
		return models.NewLoadFailure(models.LoadRetryable, err, objectName, batchID, timeStarted)
	}

	insertStatus, err := l.warehouse.InsertBatch(ctx, batch)
	if err != nil {
		status := models.LoadPermanent
		if models.IsRetryable(err) {
			status = models.LoadRetryable
		}
		return models.NewLoadFailure(status, err, objectName, batchID, timeStarted)
	}

	status := models.LoadSuccess
	if len(rejected) > 0 {
		status = models.LoadPartialSuccess
	}

	res := models.NewLoadResult(status, objectName, batchID, timeStarted)
	res.RowsLoaded = batch.RowCount()
	res.Rejected = rejected
	res.Replayed = insertStatus == warehouseiface.InsertConflictIgnored
	return res
}

// classifyFetchFailure maps an object fetch error onto the result
// taxonomy. Unknown fetch failures are presumed transient so the
// delivery mechanism gets another attempt.
func (l *Loader) classifyFetchFailure(err error, objectName string, batchID string, timeStarted time.Time) *models.LoadResult {
	var notFoundErr *models.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		l.log.Warnf("Object '%s' no longer exists, nothing to load", objectName)
		return models.NewLoadFailure(models.LoadPermanent, err, objectName, batchID, timeStarted)
	}

	var sizeErr *models.SizeLimitExceededError
	if errors.As(err, &sizeErr) {
		return models.NewLoadFailure(models.LoadPermanent, err, objectName, batchID, timeStarted)
	}

	return models.NewLoadFailure(models.LoadRetryable, errors.Wrap(err, "Failed to fetch object"), objectName, batchID, timeStarted)
}
