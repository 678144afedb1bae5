package redisad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	redisad "home_card/internal/adapters/redis"
	"home_card/internal/domain"
)

func TestSessions_PercentRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := redisad.NewSessions(redisad.New(mr.Addr(), "", 0), 30*time.Minute)
	ctx := context.Background()

	_, ok, err := sessions.Percent(ctx, "session:abc:partner_percent")
	require.NoError(t, err)
	require.False(t, ok, "fresh session must have no percent")

	require.NoError(t, sessions.SetPercent(ctx, "session:abc:partner_percent", decimal.RequireFromString("-7.5")))

	got, ok, err := sessions.Percent(ctx, "session:abc:partner_percent")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Equal(decimal.RequireFromString("-7.5")), "got %s", got)

	require.Equal(t, 30*time.Minute, mr.TTL("session:abc:partner_percent"))
}

func TestSessions_ExpiresWithSession(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := redisad.NewSessions(redisad.New(mr.Addr(), "", 0), time.Minute)
	ctx := context.Background()

	require.NoError(t, sessions.SetPercent(ctx, "k", decimal.NewFromInt(5)))
	mr.FastForward(2 * time.Minute)

	_, ok, err := sessions.Percent(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_UnavailableIsStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	mr.Close()

	var dst string
	_, err := cache.Get(context.Background(), "k", &dst)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrStoreUnavailable), "got %v", err)
}
