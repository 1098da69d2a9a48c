// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package common

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// temporaryDir is where we go to store any temporary assets for the
// running application
var temporaryDir = filepath.Join(os.TempDir(), "booking-loader")

// --- Cloud Helpers

// GetGCPServiceAccountFromBase64 will take a base64 encoded string
// and attempt to store it in a local temporary file so that it can be
// leveraged as the GOOGLE_APPLICATION_CREDENTIALS for the application
func GetGCPServiceAccountFromBase64(serviceAccountB64 string) (string, error) {
	sDec, err := base64.StdEncoding.DecodeString(serviceAccountB64)
	if err != nil {
		return "", errors.Wrap(err, "Failed to Base64 decode service account")
	}

	err = os.MkdirAll(temporaryDir, 0755)
	if err != nil {
		return "", errors.Wrap(err, "Failed to create temporary directory")
	}

	targetFile := filepath.Join(temporaryDir, fmt.Sprintf("gcp-service-account-%s.json", uuid.New().String()))

	err = os.WriteFile(targetFile, sDec, 0600)
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("Failed to write GCP service account to file '%s'", targetFile))
	}

	return targetFile, nil
}

// DeleteTemporaryDir deletes the temporary directory and all of its assets
func DeleteTemporaryDir() error {
	return os.RemoveAll(temporaryDir)
}

// --- Generic Helpers

// GetAverageFromDuration will divide a duration by a total number and then return
// this value as another duration
func GetAverageFromDuration(sum time.Duration, total int64) time.Duration {
	if total > 0 {
		return time.Duration(int64(sum)/total) * time.Nanosecond
	}
	return time.Duration(0)
}
