// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package objectstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// InMemoryObjectStore is a store implementation useful for testing the
// pipeline without a live bucket. It mirrors the error contract of the
// GCS store, including the pre-read size check.
type InMemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte

	getCalls int64
}

// NewInMemoryObjectStore creates an empty in-memory store
func NewInMemoryObjectStore() *InMemoryObjectStore {
	return &InMemoryObjectStore{
		objects: map[string]map[string][]byte{},
	}
}

// PutObject seeds an object into the store
func (s *InMemoryObjectStore) PutObject(bucket string, objectName string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[bucket]; !ok {
		s.objects[bucket] = map[string][]byte{}
	}
	s.objects[bucket][objectName] = data
}

// Get fetches the full contents of an object
func (s *InMemoryObjectStore) Get(ctx context.Context, bucket string, objectName string, maxSizeBytes int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++

	data, ok := s.objects[bucket][objectName]
	if !ok {
		return nil, &models.ObjectNotFoundError{Bucket: bucket, ObjectName: objectName}
	}

	if maxSizeBytes > 0 && int64(len(data)) > maxSizeBytes {
		return nil, &models.SizeLimitExceededError{
			ObjectName:   objectName,
			SizeBytes:    int64(len(data)),
			MaxSizeBytes: maxSizeBytes,
		}
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the names of all objects under a prefix
func (s *InMemoryObjectStore) List(ctx context.Context, bucket string, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name := range s.objects[bucket] {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Copy duplicates an object to another location
func (s *InMemoryObjectStore) Copy(ctx context.Context, srcBucket string, srcObjectName string, dstBucket string, dstObjectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[srcBucket][srcObjectName]
	if !ok {
		return &models.ObjectNotFoundError{Bucket: srcBucket, ObjectName: srcObjectName}
	}

	if _, ok := s.objects[dstBucket]; !ok {
		s.objects[dstBucket] = map[string][]byte{}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[dstBucket][dstObjectName] = cp
	return nil
}

// Delete removes an object
func (s *InMemoryObjectStore) Delete(ctx context.Context, bucket string, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[bucket][objectName]; !ok {
		return &models.ObjectNotFoundError{Bucket: bucket, ObjectName: objectName}
	}
	delete(s.objects[bucket], objectName)
	return nil
}

// GetID returns the identifier for this store
func (s *InMemoryObjectStore) GetID() string {
	return "in_memory"
}

// GetCalls returns how many Get invocations the store has served,
// which lets tests assert that misrouted events trigger no fetch
func (s *InMemoryObjectStore) GetCalls() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// HasObject reports whether an object currently exists in the store
func (s *InMemoryObjectStore) HasObject(bucket string, objectName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[bucket][objectName]
	return ok
}
