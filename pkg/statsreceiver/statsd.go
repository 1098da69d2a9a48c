// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package statsreceiver

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	statsd "github.com/smira/go-statsd"

	"github.com/rideshare-devops/booking-loader/pkg/models"
)

// StatsDStatsReceiver holds a new client for writing statistics to a
// StatsD server
type StatsDStatsReceiver struct {
	client *statsd.Client
}

// NewStatsDStatsReceiver creates a new client for writing metrics to
// StatsD
func NewStatsDStatsReceiver(address string, prefix string, tagsRaw string) (*StatsDStatsReceiver, error) {
	tagsMap := map[string]string{}
	err := json.Unmarshal([]byte(tagsRaw), &tagsMap)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshall STATSD_TAGS to map")
	}

	var tags []statsd.Tag
	for key, value := range tagsMap {
		tags = append(tags, statsd.StringTag(key, value))
	}

	client := statsd.NewClient(address,
		statsd.MaxPacketSize(1400),
		statsd.MetricPrefix(fmt.Sprintf("%s.", prefix)),
		statsd.TagStyle(statsd.TagFormatDatadog),
		statsd.DefaultTags(tags...),
		statsd.ReconnectInterval(60*time.Second),
	)

	return &StatsDStatsReceiver{
		client: client,
	}, nil
}

// Send emits the bufferred metrics to the receiver
func (s *StatsDStatsReceiver) Send(b *models.ObserverBuffer) {
	s.client.Incr("load_success", b.LoadsSucceeded)
	s.client.Incr("load_partial_success", b.LoadsPartial)
	s.client.Incr("load_retryable", b.LoadsRetryable)
	s.client.Incr("load_permanent", b.LoadsPermanent)
	s.client.Incr("load_replayed", b.LoadsReplayed)
	s.client.Incr("rows_loaded", b.RowsLoaded)
	s.client.Incr("rows_rejected", b.RowsRejected)
	s.client.PrecisionTiming("latency_load_max", b.MaxLoadLatency)
	s.client.PrecisionTiming("latency_load_avg", b.GetAvgLoadLatency())
}
