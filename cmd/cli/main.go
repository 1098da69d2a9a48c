// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package main

import (
	"context"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/rideshare-devops/booking-loader/cmd"
	"github.com/rideshare-devops/booking-loader/pkg/listener"
	"github.com/rideshare-devops/booking-loader/pkg/loader"
	"github.com/rideshare-devops/booking-loader/pkg/models"
	"github.com/rideshare-devops/booking-loader/pkg/retry"
)

const (
	appUsage     = "Replays finalized booking objects through the warehouse loader"
	appCopyright = "(c) 2025-2026 Rideshare Analytics Ltd. All rights reserved."
)

func main() {
	cfg, sentryEnabled, err := cmd.Init()
	if err != nil {
		exitWithError(err, sentryEnabled)
	}

	app := cli.NewApp()
	app.Name = cmd.AppName
	app.Usage = appUsage
	app.Version = cmd.AppVersion
	app.Copyright = appCopyright
	app.Compiled = time.Now().UTC()

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "object, o",
			Usage: "Replay a single object by name",
		},
		cli.StringFlag{
			Name:  "prefix, p",
			Usage: "Replay every object under a prefix in the source bucket",
		},
		cli.IntFlag{
			Name:  "attempts, a",
			Usage: "How many delivery attempts to make per object",
			Value: 3,
		},
	}

	app.Action = func(c *cli.Context) error {
		object := c.String("object")
		prefix := c.String("prefix")
		attempts := c.Int("attempts")

		if object == "" && prefix == "" {
			return errors.New("one of --object or --prefix is required")
		}

		ctx := context.Background()

		store, err := cfg.GetObjectStore(ctx)
		if err != nil {
			return err
		}

		wh, err := cfg.GetWarehouse(ctx)
		if err != nil {
			return err
		}
		wh.Open()
		defer wh.Close()

		ld, err := loader.New(store, wh, cfg.SourceBucket, cfg.MaxObjectSizeBytes)
		if err != nil {
			return err
		}

		lst, err := listener.New(ld, cfg.SourceBucket)
		if err != nil {
			return err
		}

		q, err := cfg.GetQuarantine(store)
		if err != nil {
			return err
		}
		if q != nil {
			lst.SetQuarantine(q)
		}

		obs, err := cfg.GetObserver()
		if err != nil {
			return err
		}
		obs.Start()
		defer obs.Stop()
		lst.SetObserver(obs)

		var objectNames []string
		if object != "" {
			objectNames = []string{object}
		} else {
			objectNames, err = store.List(ctx, cfg.SourceBucket, prefix)
			if err != nil {
				return errors.Wrap(err, "Failed to list objects to replay")
			}
		}
		log.Infof("Replaying %d object(s) from bucket '%s' ...", len(objectNames), cfg.SourceBucket)

		var failed int
		for _, objectName := range objectNames {
			event := &models.IngestionEvent{
				Bucket:       cfg.SourceBucket,
				ObjectName:   objectName,
				EventID:      uuid.New().String(),
				TimeReceived: time.Now().UTC(),
			}

			err := retry.RetryWithContext(ctx, attempts, time.Second, objectName, func() error {
				loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout())
				defer cancel()

				res := lst.OnObjectFinalized(loadCtx, event)
				if res.Retry() {
					return res.Err
				}
				return nil
			})
			if err != nil {
				log.WithFields(log.Fields{"error": err}).Errorf("Failed to replay object '%s'", objectName)
				failed++
			}
		}

		if failed > 0 {
			return errors.Errorf("%d of %d object(s) failed to replay", failed, len(objectNames))
		}
		return nil
	}

	app.ExitErrHandler = func(context *cli.Context, err error) {
		if err != nil {
			exitWithError(err, sentryEnabled)
		}
	}

	if err := app.Run(os.Args); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("failed to run cli")
	}
}

// exitWithError will ensure we log the error and leave time for
// Sentry to flush
func exitWithError(err error, flushSentry bool) {
	log.WithFields(log.Fields{"error": err}).Error(err)
	if flushSentry {
		sentry.Flush(2 * time.Second)
	}
	os.Exit(1)
}
