package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"home_card/internal/domain"
)

type cardBuilder interface {
	BuildBySerial(ctx context.Context, serial string, q domain.SearchQuery) (domain.PropertyView, error)
}

type result struct {
	ok, broken, unavailable int32
}

func (r result) exitCode() int {
	if r.broken > 0 || r.unavailable > 0 {
		return 1
	}
	return 0
}

// checkAll builds every card with at most workers builds in flight, each under
// its own timeout.
func checkAll(ctx context.Context, cards cardBuilder, serials []string, q domain.SearchQuery, workers int, timeout time.Duration) (result, error) {
	sem := semaphore.NewWeighted(int64(max(workers, 1)))
	var (
		wg                  sync.WaitGroup
		ok, broken, unavail atomic.Int32
	)
	for _, serial := range serials {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return result{}, err
		}

		wg.Add(1)
		go func(serial string) {
			defer wg.Done()
			defer sem.Release(1)

			bctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			v, err := cards.BuildBySerial(bctx, serial, q)
			switch {
			case err == nil:
				ok.Add(1)
				log.Info().Str("serial", serial).Int("rooms", len(v.Rooms)).Msg("card ok")
			case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
				unavail.Add(1)
				log.Warn().Str("serial", serial).Err(err).Msg("card unavailable")
			default:
				broken.Add(1)
				log.Error().Str("serial", serial).Err(err).Msg("card broken")
			}
		}(serial)
	}
	wg.Wait()
	return result{ok: ok.Load(), broken: broken.Load(), unavailable: unavail.Load()}, nil
}
