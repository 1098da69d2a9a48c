// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Retry provides the ability to exponentially retry the execution of a
// function
func Retry(attempts int, sleep time.Duration, prefix string, f func() error) error {
	return RetryWithContext(context.Background(), attempts, sleep, prefix, f)
}

// RetryWithContext behaves like Retry but aborts between attempts as
// soon as the context is done
func RetryWithContext(ctx context.Context, attempts int, sleep time.Duration, prefix string, f func() error) error {
	err := f()
	if err != nil {
		logrus.Warnf("Retrying func (attempts: %d): %s: %s", attempts, prefix, err)

		if attempts--; attempts > 0 {
			jitter := time.Duration(rand.Int63n(int64(sleep)))
			sleep = sleep + jitter/2

			select {
			case <-ctx.Done():
				return errors.Wrap(err, prefix)
			case <-time.After(sleep):
			}

			return RetryWithContext(ctx, attempts, 2*sleep, prefix, f)
		}
		return errors.Wrap(err, prefix)
	}

	return nil
}
