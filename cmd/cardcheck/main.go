// Command cardcheck builds the card of every serial given on the command line
// and reports the ones that fail, so broken reference data surfaces before a
// guest opens the page.
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"home_card/internal/adapters/booking"
	"home_card/internal/adapters/observability"
	"home_card/internal/app"
	"home_card/internal/domain"
	"home_card/internal/shared"
	mysqlrepo "home_card/internal/storage/mysql"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; deferred cleanup finishes before main exits.
func run() int {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	serials := os.Args[1:]
	if len(serials) == 0 {
		log.Error().Msg("usage: cardcheck SERIAL...")
		return 2
	}
	log.Info().
		Int("homes", len(serials)).
		Int("workers", cfg.FetchConcurrency).
		Msg("cardcheck starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error().Err(err).Msg("sql.Open failed")
		return 1
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("db.Ping failed")
		return 1
	}

	repo := mysqlrepo.New(db)
	rooms, err := booking.New(cfg.BookingBase, cfg.BookingKey, cfg.BookingRPS)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize booking client")
		return 1
	}
	// one home at a time per worker; the pool bounds the homes in flight
	cards := app.NewCardService(repo, rooms, repo, repo, 1)

	from := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1)
	q := domain.SearchQuery{DateFrom: from, DateTo: from.AddDate(0, 0, 7), Adults: 2}

	res, err := checkAll(ctx, cards, serials, q, cfg.FetchConcurrency, cfg.RequestTimeout)
	if err != nil {
		log.Error().Err(err).Msg("cardcheck aborted")
		return 1
	}
	log.Info().
		Int32("broken", res.broken).
		Int32("unavailable", res.unavailable).
		Msg("cardcheck completed")
	return res.exitCode()
}
