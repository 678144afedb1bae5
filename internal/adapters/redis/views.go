package redisad

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Views counts card openings per home: a running total plus one counter per
// UTC day, so the relational store stays read-only.
type Views struct {
	cache *Cache
	now   func() time.Time
}

func NewViews(c *Cache) *Views { return &Views{cache: c, now: time.Now} }

func (v *Views) RecordView(ctx context.Context, homeID uuid.UUID) error {
	if _, err := v.cache.Incr(ctx, totalViewsKey(homeID)); err != nil {
		return err
	}
	_, err := v.cache.Incr(ctx, dailyViewsKey(homeID, v.now()))
	return err
}

func totalViewsKey(homeID uuid.UUID) string { return "home:" + homeID.String() + ":views" }

func dailyViewsKey(homeID uuid.UUID, t time.Time) string {
	return "home:" + homeID.String() + ":views:" + t.UTC().Format("2006-01-02")
}
