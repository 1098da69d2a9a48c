// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package cmd

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	"github.com/rideshare-devops/booking-loader/pkg/listener"
	"github.com/rideshare-devops/booking-loader/pkg/loader"
	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// ServerlessRequestHandler is a common function for all serverless
// implementations to leverage. It wires the configured boundaries into
// a listener, runs one event under the invocation deadline and maps
// the result onto the platform's retry contract: a non-nil return
// means redeliver, a nil return means the event is done.
func ServerlessRequestHandler(ctx context.Context, event *models.IngestionEvent) error {
	cfg, sentryEnabled, err := Init()
	if err != nil {
		return err
	}
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	// --- Setup structs

	store, err := cfg.GetObjectStore(ctx)
	if err != nil {
		return err
	}

	wh, err := cfg.GetWarehouse(ctx)
	if err != nil {
		return err
	}
	wh.Open()
	defer wh.Close()

	ld, err := loader.New(store, wh, cfg.SourceBucket, cfg.MaxObjectSizeBytes)
	if err != nil {
		return err
	}

	lst, err := listener.New(ld, cfg.SourceBucket)
	if err != nil {
		return err
	}

	q, err := cfg.GetQuarantine(store)
	if err != nil {
		return err
	}
	if q != nil {
		lst.SetQuarantine(q)
	}

	// --- Process event

	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout())
	defer cancel()

	res := lst.OnObjectFinalized(ctx, event)
	if res.Retry() {
		return errors.Wrap(res.Err, "Load must be retried")
	}

	// Permanent failures are already reported; returning them would
	// only make the platform redeliver an event that can never succeed
	return nil
}
