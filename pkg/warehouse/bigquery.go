// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package warehouse

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	bk "github.com/rideshare-devops/booking-loader/pkg/booking"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse/warehouseiface"
)

// BigQueryWarehouse holds a new client for writing booking batches to
// a BigQuery table
type BigQueryWarehouse struct {
	projectID string
	datasetID string
	tableID   string

	client   *bigquery.Client
	inserter *bigquery.Inserter

	log *log.Entry
}

// NewBigQueryWarehouse creates a new client for writing booking
// batches to a BigQuery table
func NewBigQueryWarehouse(ctx context.Context, projectID string, datasetID string, tableID string) (*BigQueryWarehouse, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create BigQuery client")
	}

	return &BigQueryWarehouse{
		projectID: projectID,
		datasetID: datasetID,
		tableID:   tableID,
		client:    client,
		log:       log.WithFields(log.Fields{"warehouse": "bigquery", "cloud": "GCP", "project": projectID, "dataset": datasetID, "table": tableID}),
	}, nil
}

// Open opens a pipe to the table
func (w *BigQueryWarehouse) Open() {
	w.log.Warnf("Opening warehouse for table '%s.%s' in project %s", w.datasetID, w.tableID, w.projectID)
	w.inserter = w.client.Dataset(w.datasetID).Table(w.tableID).Inserter()
}

// InsertBatch issues one idempotent batch insert.
//
// Idempotence rests on two mechanisms. A batch-presence query short
// circuits replays that are already durable, and every row carries an
// insert ID derived from the batch identifier and line number so that
// two in-flight inserts racing through the presence check dedupe row
// by row in the streaming buffer. The table therefore never holds two
// copies of a batch.
func (w *BigQueryWarehouse) InsertBatch(ctx context.Context, batch *bk.Batch) (warehouseiface.InsertStatus, error) {
	if w.inserter == nil {
		return warehouseiface.InsertApplied, errors.New("Table has not been opened, must call Open() before attempting to insert")
	}

	w.log.Debugf("Inserting batch '%s' with %d rows ...", batch.ID, batch.RowCount())

	committed, err := w.batchCommitted(ctx, batch.ID)
	if err != nil {
		return warehouseiface.InsertApplied, mapInsertError(err)
	}
	if committed {
		w.log.Infof("Batch '%s' already committed, ignoring replay", batch.ID)
		return warehouseiface.InsertConflictIgnored, nil
	}

	if err := w.inserter.Put(ctx, batch.Records); err != nil {
		return warehouseiface.InsertApplied, mapInsertError(err)
	}

	w.log.Debugf("Successfully inserted %d rows for batch '%s'", batch.RowCount(), batch.ID)
	return warehouseiface.InsertApplied, nil
}

// batchCommitted reports whether any rows tagged with the batch
// identifier are already durable in the table
func (w *BigQueryWarehouse) batchCommitted(ctx context.Context, batchID string) (bool, error) {
	q := w.client.Query(fmt.Sprintf(
		"SELECT COUNT(*) AS row_count FROM `%s.%s.%s` WHERE batch_id = @batch_id",
		w.projectID, w.datasetID, w.tableID,
	))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "batch_id", Value: batchID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return false, errors.Wrap(err, "Failed to query batch presence")
	}

	var row struct {
		RowCount int64 `bigquery:"row_count"`
	}
	if err := it.Next(&row); err != nil && err != iterator.Done {
		return false, errors.Wrap(err, "Failed to read batch presence result")
	}

	return row.RowCount > 0, nil
}

// Close stops the table
func (w *BigQueryWarehouse) Close() {
	w.log.Warnf("Closing warehouse for table '%s.%s' in project %s", w.datasetID, w.tableID, w.projectID)
	w.inserter = nil
	w.client.Close()
}

// GetID returns the identifier for this warehouse
func (w *BigQueryWarehouse) GetID() string {
	return fmt.Sprintf("%s.%s.%s", w.projectID, w.datasetID, w.tableID)
}

// mapInsertError converts BigQuery API failures into the error
// taxonomy the listener classifies on
func mapInsertError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &models.QuotaExceededError{Err: err}
		case apiErr.Code >= http.StatusInternalServerError:
			return &models.WarehouseUnavailableError{Err: err}
		}
	}

	var putErr bigquery.PutMultiError
	if errors.As(err, &putErr) {
		var rowErrs error
		for i := range putErr {
			rowErrs = multierror.Append(rowErrs, &putErr[i])
		}
		return errors.Wrap(rowErrs, "Warehouse rejected rows during insert")
	}

	return err
}
