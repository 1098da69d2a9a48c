// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package booking

import (
	"crypto/sha256"
	"encoding/hex"
)

// BatchID returns the deterministic load-batch identifier for an
// object. It is derived from the object name alone so that every
// redelivery of the same object, under any event ID, resolves to the
// same identifier.
func BatchID(objectName string) string {
	sum := sha256.Sum256([]byte(objectName))
	return hex.EncodeToString(sum[:])
}

// Batch is the set of valid records parsed from one object, tagged
// with the deterministic batch identifier. A batch is inserted into
// the warehouse at most once for a given identifier.
type Batch struct {
	ID         string
	ObjectName string
	Records    []*Record
}

// NewBatch builds an empty batch for an object
func NewBatch(objectName string) *Batch {
	return &Batch{
		ID:         BatchID(objectName),
		ObjectName: objectName,
	}
}

// Append stamps a record with the batch provenance and adds it to the
// batch
func (b *Batch) Append(r *Record) {
	r.BatchID = b.ID
	r.SourceObject = b.ObjectName
	b.Records = append(b.Records, r)
}

// RowCount returns the number of valid records held in the batch
func (b *Batch) RowCount() int64 {
	return int64(len(b.Records))
}
