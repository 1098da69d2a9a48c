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

// IngestionEvent holds the structure of a single object-finalize
// notification as delivered by the upstream trigger mechanism.
//
// The EventID is unique per delivery attempt and may differ across
// redeliveries of the same object; it must never be used for
// idempotency decisions.
type IngestionEvent struct {
	Bucket     string
	ObjectName string
	EventID    string
	SizeBytes  int64

	// TimeReceived is when the notification reached this process
	TimeReceived time.Time
}

func (e *IngestionEvent) String() string {
	return fmt.Sprintf(
		"Bucket:%s,ObjectName:%s,EventID:%s,SizeBytes:%d",
		e.Bucket,
		e.ObjectName,
		e.EventID,
		e.SizeBytes,
	)
}
