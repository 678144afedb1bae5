// Package booking is the HTTP client of the room/tariff provider.
package booking

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"home_card/internal/adapters/observability"
	"home_card/internal/domain"
)

const dateLayout = "2006-01-02"

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("booking base URL is required")
	}
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type roomsPayload struct {
	Rooms []domain.Room `json:"rooms"`
}

// Rooms returns the bookable rooms of a home for the query. A home unknown to
// the provider has no rooms; any other failure is ErrStoreUnavailable.
func (c *Client) Rooms(ctx context.Context, homeID uuid.UUID, q domain.SearchQuery) ([]domain.Room, error) {
	var out roomsPayload
	err := c.get(ctx, "rooms", c.roomsURL(homeID, q), &out)
	if errors.Is(err, errNotFound) {
		return []domain.Room{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("booking rooms for %s: %w: %w", homeID, domain.ErrStoreUnavailable, err)
	}
	if out.Rooms == nil {
		out.Rooms = []domain.Room{}
	}
	return out.Rooms, nil
}

func (c *Client) roomsURL(homeID uuid.UUID, q domain.SearchQuery) string {
	v := url.Values{}
	v.Set("date_from", q.DateFrom.Format(dateLayout))
	v.Set("date_to", q.DateTo.Format(dateLayout))
	v.Set("adults", strconv.Itoa(q.Adults))
	if len(q.ChildrenAges) > 0 {
		ages := make([]string, 0, len(q.ChildrenAges))
		for _, a := range q.ChildrenAges {
			ages = append(ages, strconv.Itoa(a))
		}
		v.Set("children", strings.Join(ages, ","))
	}
	if q.Treatment {
		v.Set("treatment", "1")
	}
	if q.RoomType != "" {
		v.Set("room_type", q.RoomType)
	}
	return fmt.Sprintf("%s/homes/%s/rooms?%s", c.base, homeID, v.Encode())
}

// ---- Internals ----

var errNotFound = errors.New("booking: not found")

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "home-card/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("booking", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("booking", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return errNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
