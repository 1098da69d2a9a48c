// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package listener

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rideshare-devops/booking-loader/pkg/loader"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/observer"
	"github.com/rideshare-devops/booking-loader/pkg/quarantine"
)

// Listener receives object-finalize notifications and dispatches them
// to the loader. It is stateless across invocations: redeliveries are
// not deduplicated here, they are made safe by the loader's batch
// identifier idempotence.
type Listener struct {
	loader       *loader.Loader
	sourceBucket string

	quarantine *quarantine.Quarantine
	observer   *observer.Observer

	log *log.Entry
}

// New creates a listener bound to a source bucket
func New(l *loader.Loader, sourceBucket string) (*Listener, error) {
	if l == nil {
		return nil, errors.New("Loader is required")
	}
	if sourceBucket == "" {
		return nil, errors.New("Source bucket is required")
	}

	return &Listener{
		loader:       l,
		sourceBucket: sourceBucket,
		log:          log.WithFields(log.Fields{"name": "Listener", "bucket": sourceBucket}),
	}, nil
}

// SetQuarantine attaches a dead-letter mover for permanently-failed
// objects
func (l *Listener) SetQuarantine(q *quarantine.Quarantine) {
	l.quarantine = q
}

// SetObserver attaches an observer so load results feed the metrics
// pipeline
func (l *Listener) SetObserver(o *observer.Observer) {
	l.observer = o
}

// OnObjectFinalized handles one finalize notification end to end and
// returns the terminal load result. Events for a bucket other than the
// configured source are rejected before any fetch happens.
func (l *Listener) OnObjectFinalized(ctx context.Context, event *models.IngestionEvent) *models.LoadResult {
	l.log.Infof("Received event: %s", event.String())

	if event.Bucket != l.sourceBucket {
		res := models.NewLoadFailure(
			models.LoadPermanent,
			&models.MisroutedEventError{Bucket: event.Bucket, SourceBucket: l.sourceBucket},
			event.ObjectName,
			"",
			event.TimeReceived,
		)
		l.report(res)
		return res
	}

	res := l.loader.Load(ctx, event.ObjectName)

	if res.Status == models.LoadPermanent && l.quarantine != nil && shouldQuarantine(res.Err) {
		if err := l.quarantine.Move(ctx, event.Bucket, event.ObjectName); err != nil {
			// Quarantine is best effort; the classification stands
			l.log.WithFields(log.Fields{"error": err}).Errorf("Failed to quarantine object '%s'", event.ObjectName)
		} else {
			res.Quarantined = true
		}
	}

	l.report(res)
	return res
}

// report logs the terminal result and forwards it to the observer
func (l *Listener) report(res *models.LoadResult) {
	switch res.Status {
	case models.LoadRetryable, models.LoadPermanent:
		l.log.Errorf("Load finished: %s", res.String())
	default:
		l.log.Infof("Load finished: %s", res.String())
	}

	if l.observer != nil {
		l.observer.LoadCompleted(res)
	}
}

// shouldQuarantine reports whether a permanent failure concerns the
// object's content. Misrouted events and vanished objects leave
// nothing worth keeping.
func shouldQuarantine(err error) bool {
	if err == nil {
		return false
	}

	var misroutedErr *models.MisroutedEventError
	if errors.As(err, &misroutedErr) {
		return false
	}
	var notFoundErr *models.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return false
	}
	return true
}
