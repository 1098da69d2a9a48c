// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package booking

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// ParseObject reads a source object as CSV and returns the batch of
// valid records alongside the rejected rows.
//
// The first row is the header and is skipped; an empty object or a
// header-only object yields an empty batch. A row that fails shape or
// type validation becomes a RejectedRecord and never aborts the rest
// of the object. The returned error is reserved for input that cannot
// be read at all.
func ParseObject(r io.Reader, objectName string) (*Batch, []*models.RejectedRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	batch := NewBatch(objectName)
	var rejected []*models.RejectedRecord

	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			if parseErr, ok := err.(*csv.ParseError); ok {
				rejected = append(rejected, &models.RejectedRecord{
					Line:   line,
					Reason: parseErr.Err.Error(),
				})
				continue
			}
			return nil, nil, errors.Wrap(err, "Failed to read object as CSV")
		}

		// Header row
		if line == 1 {
			continue
		}

		record, err := ParseRow(fields, line)
		if err != nil {
			rejected = append(rejected, &models.RejectedRecord{
				Line:   line,
				Reason: err.Error(),
				Raw:    strings.Join(fields, ","),
			})
			continue
		}

		batch.Append(record)
	}

	return batch, rejected, nil
}
