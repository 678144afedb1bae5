package redisad

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

// Sessions keeps viewer-scoped values for the lifetime of a session.
type Sessions struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewSessions(c domain.Cache, ttl time.Duration) *Sessions {
	return &Sessions{cache: c, ttl: ttl}
}

func (s *Sessions) Percent(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	var pct decimal.Decimal
	ok, err := s.cache.Get(ctx, key, &pct)
	if err != nil || !ok {
		return decimal.Decimal{}, false, err
	}
	return pct, true, nil
}

func (s *Sessions) SetPercent(ctx context.Context, key string, pct decimal.Decimal) error {
	return s.cache.Set(ctx, key, pct, int(s.ttl.Seconds()))
}
