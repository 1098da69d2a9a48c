// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package statsreceiveriface

import (
	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// StatsReceiver describes the interface for how to push observed
// statistics to a downstream store
type StatsReceiver interface {
	Send(buffer *models.ObserverBuffer)
}
