// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package objectstoreiface

import (
	"context"
)

// ObjectStore describes the interface for fetching and managing raw
// objects in a durable blob store
type ObjectStore interface {
	// Get fetches the full contents of an object. When maxSizeBytes is
	// greater than zero an object larger than the limit must be
	// rejected before any bytes are streamed.
	Get(ctx context.Context, bucket string, objectName string, maxSizeBytes int64) ([]byte, error)

	// List returns the names of all objects under a prefix
	List(ctx context.Context, bucket string, prefix string) ([]string, error)

	// Copy duplicates an object to another location
	Copy(ctx context.Context, srcBucket string, srcObjectName string, dstBucket string, dstObjectName string) error

	// Delete removes an object
	Delete(ctx context.Context, bucket string, objectName string) error

	// GetID returns the identifier for this store
	GetID() string
}
