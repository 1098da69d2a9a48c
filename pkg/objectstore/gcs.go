// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package objectstore

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// GCSObjectStore holds a new client for fetching objects from Google
// Cloud Storage
type GCSObjectStore struct {
	client *storage.Client

	log *log.Entry
}

// NewGCSObjectStore creates a new client for fetching objects from
// Google Cloud Storage
func NewGCSObjectStore(ctx context.Context) (*GCSObjectStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create GCS client")
	}

	return &GCSObjectStore{
		client: client,
		log:    log.WithFields(log.Fields{"store": "gcs", "cloud": "GCP"}),
	}, nil
}

// Get fetches the full contents of an object. The size is checked
// against the object metadata before the read begins so an oversized
// object is never partially streamed.
func (s *GCSObjectStore) Get(ctx context.Context, bucket string, objectName string, maxSizeBytes int64) ([]byte, error) {
	obj := s.client.Bucket(bucket).Object(objectName)

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, &models.ObjectNotFoundError{Bucket: bucket, ObjectName: objectName}
		}
		return nil, errors.Wrap(err, "Failed to fetch object attributes")
	}

	if maxSizeBytes > 0 && attrs.Size > maxSizeBytes {
		return nil, &models.SizeLimitExceededError{
			ObjectName:   objectName,
			SizeBytes:    attrs.Size,
			MaxSizeBytes: maxSizeBytes,
		}
	}

	rdr, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, &models.ObjectNotFoundError{Bucket: bucket, ObjectName: objectName}
		}
		return nil, errors.Wrap(err, "Failed to open object reader")
	}
	defer rdr.Close()

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read object contents")
	}

	s.log.Debugf("Fetched %d bytes from gs://%s/%s", len(data), bucket, objectName)
	return data, nil
}

// List returns the names of all objects under a prefix
func (s *GCSObjectStore) List(ctx context.Context, bucket string, prefix string) ([]string, error) {
	var names []string

	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Failed to list objects")
		}
		names = append(names, attrs.Name)
	}

	return names, nil
}

// Copy duplicates an object to another location
func (s *GCSObjectStore) Copy(ctx context.Context, srcBucket string, srcObjectName string, dstBucket string, dstObjectName string) error {
	src := s.client.Bucket(srcBucket).Object(srcObjectName)
	dst := s.client.Bucket(dstBucket).Object(dstObjectName)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return &models.ObjectNotFoundError{Bucket: srcBucket, ObjectName: srcObjectName}
		}
		return errors.Wrap(err, "Failed to copy object")
	}
	return nil
}

// Delete removes an object
func (s *GCSObjectStore) Delete(ctx context.Context, bucket string, objectName string) error {
	if err := s.client.Bucket(bucket).Object(objectName).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return &models.ObjectNotFoundError{Bucket: bucket, ObjectName: objectName}
		}
		return errors.Wrap(err, "Failed to delete object")
	}
	return nil
}

// GetID returns the identifier for this store
func (s *GCSObjectStore) GetID() string {
	return "gcs"
}
