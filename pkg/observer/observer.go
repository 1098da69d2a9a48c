// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package observer

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/statsreceiver/statsreceiveriface"
)

// Observer holds the channels and settings for aggregating load
// results and emitting them to the configured stats receiver
type Observer struct {
	statsClient    statsreceiveriface.StatsReceiver
	exitSignal     chan struct{}
	stopDone       chan struct{}
	loadResultChan chan *models.LoadResult
	timeout        time.Duration
	reportInterval time.Duration
	isRunning      bool

	log *log.Entry
}

// New builds a new observer to be used to gather telemetry about
// completed loads
func New(statsClient statsreceiveriface.StatsReceiver, timeout time.Duration, reportInterval time.Duration) *Observer {
	return &Observer{
		statsClient:    statsClient,
		exitSignal:     make(chan struct{}),
		stopDone:       make(chan struct{}),
		loadResultChan: make(chan *models.LoadResult, 1000),
		timeout:        timeout,
		reportInterval: reportInterval,
		log:            log.WithFields(log.Fields{"name": "Observer"}),
		isRunning:      false,
	}
}

// Start launches a goroutine which processes load results
func (o *Observer) Start() {
	if o.isRunning {
		o.log.Warn("Observer is already running")
		return
	}
	o.isRunning = true

	go func() {
		reportTime := time.Now().UTC().Add(o.reportInterval)
		buffer := models.ObserverBuffer{}

	ObserverLoop:
		for {
			select {
			case <-o.exitSignal:
				o.log.Warn("Received exit signal, shutting down Observer ...")

				// Attempt final flush
				o.log.Infof(buffer.String())
				if o.statsClient != nil {
					o.statsClient.Send(&buffer)
				}

				o.isRunning = false
				break ObserverLoop
			case res := <-o.loadResultChan:
				buffer.Append(res)
			case <-time.After(o.timeout):
				o.log.Debugf("Observer timed out after (%v) waiting for result", o.timeout)
			}

			if time.Now().UTC().After(reportTime) {
				o.log.Infof(buffer.String())
				if o.statsClient != nil {
					o.statsClient.Send(&buffer)
				}

				reportTime = time.Now().UTC().Add(o.reportInterval)
				buffer = models.ObserverBuffer{}
			}
		}
		o.stopDone <- struct{}{}
	}()
}

// Stop issues a signal to halt observer processing
func (o *Observer) Stop() {
	o.log.Info("Observer Stop() called")
	if o.isRunning {
		o.exitSignal <- struct{}{}
		<-o.stopDone
	}
}

// LoadCompleted pushes a load result onto a channel for processing
// by the observer
func (o *Observer) LoadCompleted(r *models.LoadResult) {
	o.loadResultChan <- r
}
