package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	MetricsAddr      string
	MySQLDSN         string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	BookingBase      string
	BookingKey       string
	BookingRPS       int
	FetchConcurrency int
	SessionTTL       time.Duration
	RequestTimeout   time.Duration
}

// Load reads the environment. A .env file in the working directory, when
// present, fills variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Msg("ignoring non-integer env value")
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ":9100"),
		MySQLDSN:         env("MYSQL_DSN", "root:root@tcp(localhost:3306)/home_card?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:        env("REDIS_ADDR", "localhost:6379"),
		RedisDB:          atoi("REDIS_DB", 0),
		RedisPass:        env("REDIS_PASSWORD", ""),
		BookingBase:      env("BOOKING_BASE_URL", "http://localhost:8090/v1"),
		BookingKey:       env("BOOKING_API_KEY", ""),
		BookingRPS:       atoi("BOOKING_RPS", 20),
		FetchConcurrency: atoi("FETCH_CONCURRENCY", 8),
		SessionTTL:       time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		RequestTimeout:   time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.BookingKey == "" {
		log.Warn().Msg("BOOKING_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
