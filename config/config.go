// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"

	"github.com/rideshare-devops/booking-loader/pkg/objectstore"
	"github.com/rideshare-devops/booking-loader/pkg/objectstore/objectstoreiface"
	"github.com/rideshare-devops/booking-loader/pkg/observer"
	"github.com/rideshare-devops/booking-loader/pkg/quarantine"
	"github.com/rideshare-devops/booking-loader/pkg/statsreceiver"
	"github.com/rideshare-devops/booking-loader/pkg/statsreceiver/statsreceiveriface"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse"
	"github.com/rideshare-devops/booking-loader/pkg/warehouse/warehouseiface"
)

// SentryConfig configures the Sentry error tracker
type SentryConfig struct {
	Dsn   string `env:"SENTRY_DSN"`
	Tags  string `env:"SENTRY_TAGS" envDefault:"{}"`
	Debug bool   `env:"SENTRY_DEBUG" envDefault:"false"`
}

// StatsDStatsReceiverConfig configures the stats metrics receiver
type StatsDStatsReceiverConfig struct {
	Address string `env:"STATS_RECEIVER_STATSD_ADDRESS"`
	Prefix  string `env:"STATS_RECEIVER_STATSD_PREFIX" envDefault:"rideshare.booking-loader"`
	Tags    string `env:"STATS_RECEIVER_STATSD_TAGS" envDefault:"{}"`
}

// StatsReceiversConfig holds configuration for different stats receivers
type StatsReceiversConfig struct {
	StatsD StatsDStatsReceiverConfig

	// TimeoutSec is how long the observer will wait for a new result before looping
	TimeoutSec int `env:"STATS_RECEIVER_TIMEOUT_SEC" envDefault:"1"`

	// BufferSec is how long the observer buffers results before pushing results out and resetting
	BufferSec int `env:"STATS_RECEIVER_BUFFER_SEC" envDefault:"15"`
}

// Config for holding all configuration details. The surface matches
// what the provisioning layer exports into the function environment.
type Config struct {
	ProjectID string `env:"GCP_PROJECT_ID"`
	DatasetID string `env:"BQ_DATASET"`
	TableID   string `env:"BQ_TABLE"`

	SourceBucket     string `env:"SOURCE_BUCKET"`
	QuarantineBucket string `env:"QUARANTINE_BUCKET"`

	MaxObjectSizeBytes int64 `env:"MAX_OBJECT_SIZE_BYTES" envDefault:"1073741824"`
	LoadTimeoutSec     int   `env:"LOAD_TIMEOUT_SEC" envDefault:"540"`

	LogLevel                string `env:"LOG_LEVEL" envDefault:"info"`
	GoogleServiceAccountB64 string `env:"GOOGLE_APPLICATION_CREDENTIALS_B64"`

	Sentry         SentryConfig
	StatsReceiver  string `env:"STATS_RECEIVER"`
	StatsReceivers StatsReceiversConfig
}

// NewConfig resolves the config from the environment
func NewConfig() (*Config, error) {
	cfg := Config{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings the pipeline cannot run without
// are present
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return errors.New("GCP_PROJECT_ID must be set")
	}
	if c.DatasetID == "" {
		return errors.New("BQ_DATASET must be set")
	}
	if c.TableID == "" {
		return errors.New("BQ_TABLE must be set")
	}
	if c.SourceBucket == "" {
		return errors.New("SOURCE_BUCKET must be set")
	}
	if c.MaxObjectSizeBytes <= 0 {
		return errors.New("MAX_OBJECT_SIZE_BYTES must be greater than zero")
	}
	if c.LoadTimeoutSec <= 0 {
		return errors.New("LOAD_TIMEOUT_SEC must be greater than zero")
	}
	return nil
}

// LoadTimeout returns the invocation deadline for a single load
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSec) * time.Second
}

// GetObjectStore builds and returns the object store that is configured
func (c *Config) GetObjectStore(ctx context.Context) (objectstoreiface.ObjectStore, error) {
	return objectstore.NewGCSObjectStore(ctx)
}

// GetWarehouse builds and returns the warehouse that is configured
func (c *Config) GetWarehouse(ctx context.Context) (warehouseiface.Warehouse, error) {
	return warehouse.NewBigQueryWarehouse(ctx, c.ProjectID, c.DatasetID, c.TableID)
}

// GetQuarantine builds and returns the dead-letter mover, or nil when
// no quarantine bucket is configured
func (c *Config) GetQuarantine(store objectstoreiface.ObjectStore) (*quarantine.Quarantine, error) {
	if c.QuarantineBucket == "" {
		return nil, nil
	}
	return quarantine.New(store, c.QuarantineBucket)
}

// GetObserver builds and returns the observer with the embedded
// optional stats receiver
func (c *Config) GetObserver() (*observer.Observer, error) {
	sr, err := c.GetStatsReceiver()
	if err != nil {
		return nil, err
	}
	return observer.New(sr, time.Duration(c.StatsReceivers.TimeoutSec)*time.Second, time.Duration(c.StatsReceivers.BufferSec)*time.Second), nil
}

// GetStatsReceiver builds and returns the stats receiver
func (c *Config) GetStatsReceiver() (statsreceiveriface.StatsReceiver, error) {
	switch c.StatsReceiver {
	case "statsd":
		return statsreceiver.NewStatsDStatsReceiver(
			c.StatsReceivers.StatsD.Address,
			c.StatsReceivers.StatsD.Prefix,
			c.StatsReceivers.StatsD.Tags,
		)
	case "":
		return nil, nil
	default:
		return nil, errors.Errorf("Invalid stats receiver found; expected one of 'statsd' and got '%s'", c.StatsReceiver)
	}
}
