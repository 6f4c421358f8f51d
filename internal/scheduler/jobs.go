// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job names.
const (
	JobEventRetention = "event-retention"
	JobLimiterPrune   = "limiter-prune"
)

// EventPurger deletes events older than a cutoff.
type EventPurger interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// EventRetentionJob deletes events older than retentionDays once a day.
func EventRetentionJob(events EventPurger, retentionDays int, logger *slog.Logger) Job {
	return Job{
		Name:        JobEventRetention,
		Description: "Delete event log entries past the retention period",
		Schedule:    "0 3 * * *",
		Run: func(ctx context.Context) error {
			deleted, err := events.DeleteOldEvents(ctx, time.Duration(retentionDays)*24*time.Hour)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("deleted old events", "count", deleted, "retention_days", retentionDays)
			}
			return nil
		},
	}
}

// LimiterPruneJob drops idle rate limiter entries every ten minutes.
func LimiterPruneJob(prune func()) Job {
	return Job{
		Name:        JobLimiterPrune,
		Description: "Drop idle rate limiter entries",
		Schedule:    "@every 10m",
		Run: func(context.Context) error {
			prune()
			return nil
		},
	}
}
