// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package cloudfunctions

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rideshare-devops/booking-loader/cmd"
	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// GCSEvent is the payload of a Cloud Storage object-finalize event
type GCSEvent struct {
	ID     string `json:"id"`
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
	Size   string `json:"size"`
}

// HandleObjectFinalized consumes a Cloud Storage finalize notification.
// Deploy with retries enabled: a returned error signals a retryable
// load and the platform redelivers the event.
func HandleObjectFinalized(ctx context.Context, e GCSEvent) error {
	// Size is informational only; the authoritative limit check reads
	// the object metadata at fetch time
	sizeBytes, _ := strconv.ParseInt(e.Size, 10, 64)

	eventID := e.ID
	if eventID == "" {
		eventID = uuid.New().String()
	}

	event := &models.IngestionEvent{
		Bucket:       e.Bucket,
		ObjectName:   e.Name,
		EventID:      eventID,
		SizeBytes:    sizeBytes,
		TimeReceived: time.Now().UTC(),
	}

	return cmd.ServerlessRequestHandler(ctx, event)
}
