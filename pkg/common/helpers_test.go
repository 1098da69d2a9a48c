// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package common

import (
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetGCPServiceAccountFromBase64(t *testing.T) {
	assert := assert.New(t)
	defer DeleteTemporaryDir()

	path, err := GetGCPServiceAccountFromBase64(base64.StdEncoding.EncodeToString([]byte("{\"type\":\"service_account\"}")))

	assert.Nil(err)
	assert.NotEqual("", path)

	data, err := os.ReadFile(path)
	assert.Nil(err)
	assert.Equal("{\"type\":\"service_account\"}", string(data))
}

func TestGetGCPServiceAccountFromBase64_NotBase64(t *testing.T) {
	assert := assert.New(t)
	defer DeleteTemporaryDir()

	path, err := GetGCPServiceAccountFromBase64("helloworld!")

	assert.NotNil(err)
	assert.Equal("", path)
	if err != nil {
		assert.Contains(err.Error(), "Failed to Base64 decode service account")
	}
}

func TestGetAverageFromDuration(t *testing.T) {
	assert := assert.New(t)

	duration := GetAverageFromDuration(time.Duration(0), 0)
	assert.Equal(time.Duration(0), duration)

	duration2 := GetAverageFromDuration(time.Duration(10)*time.Second, 2)
	assert.Equal(time.Duration(5)*time.Second, duration2)
}
