package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"home_card/internal/shared"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("BOOKING_API_KEY", "k")
	t.Setenv("FETCH_CONCURRENCY", "3")
	t.Setenv("SESSION_TTL_SECONDS", "60")
	t.Setenv("BOOKING_RPS", "not-a-number")

	c := shared.Load()
	require.Equal(t, ":8080", c.HTTPAddr)
	require.Equal(t, 3, c.FetchConcurrency)
	require.Equal(t, time.Minute, c.SessionTTL)
	require.Equal(t, 20, c.BookingRPS)
	require.Equal(t, 15*time.Second, c.RequestTimeout)
}
