// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package quarantine

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rideshare-devops/booking-loader/pkg/objectstore/objectstoreiface"
)

// objectPrefix namespaces quarantined objects inside the dead-letter
// bucket so a backfill over the bucket root never re-ingests them
const objectPrefix = "quarantined/"

// Quarantine moves permanently-failed objects into a dead-letter
// bucket where operators can inspect them
type Quarantine struct {
	store  objectstoreiface.ObjectStore
	bucket string

	log *log.Entry
}

// New creates a quarantine bound to a dead-letter bucket
func New(store objectstoreiface.ObjectStore, bucket string) (*Quarantine, error) {
	if store == nil {
		return nil, errors.New("Object store is required")
	}
	if bucket == "" {
		return nil, errors.New("Quarantine bucket is required")
	}

	return &Quarantine{
		store:  store,
		bucket: bucket,
		log:    log.WithFields(log.Fields{"name": "Quarantine", "bucket": bucket}),
	}, nil
}

// Move relocates an object into the quarantine bucket, preserving its
// name under the quarantine prefix. The copy must succeed before the
// source is deleted so a crash mid-move never loses the object.
func (q *Quarantine) Move(ctx context.Context, srcBucket string, objectName string) error {
	dstObjectName := fmt.Sprintf("%s%s", objectPrefix, objectName)

	if err := q.store.Copy(ctx, srcBucket, objectName, q.bucket, dstObjectName); err != nil {
		return errors.Wrap(err, "Failed to copy object to quarantine")
	}

	if err := q.store.Delete(ctx, srcBucket, objectName); err != nil {
		return errors.Wrap(err, "Failed to delete object after quarantine copy")
	}

	q.log.Warnf("Moved object '%s' to quarantine as '%s'", objectName, dstObjectName)
	return nil
}
