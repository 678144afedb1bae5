package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

/********** enumerations (single source of truth) **********/

// discountUnits maps ref_home_tbl_children.discount_measure codes.
var discountUnits = map[int]string{
	1: "%",
	2: "RUB",
	3: "free",
}

func discountUnit(code int) (string, error) {
	u, ok := discountUnits[code]
	if !ok {
		return "", fmt.Errorf("children rule discount measure %d: %w", code, domain.ErrDataIntegrity)
	}
	return u, nil
}

func monthLabel(m int) (string, error) {
	if m < 1 || m > 12 {
		return "", fmt.Errorf("temperature month %d: %w", m, domain.ErrDataIntegrity)
	}
	return time.Month(m).String(), nil
}

/********** tiny helpers **********/

// formatTime trims "14:00:00" to "14:00".
func formatTime(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ":")
}

// formatDistance renders metres as "350 m" or "1.2 km".
func formatDistance(metres int) string {
	if metres <= 0 {
		return ""
	}
	if metres < 1000 {
		return strconv.Itoa(metres) + " m"
	}
	km := decimal.NewFromInt(int64(metres)).Div(decimal.NewFromInt(1000)).Round(1)
	return km.String() + " km"
}

func urls(refs []domain.ImageRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.URL())
	}
	return out
}

func sizedURLs(refs []domain.ImageRef, size string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Sized(size))
	}
	return out
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// orEmpty keeps list-typed outputs non-nil.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

/********** derived statistics **********/

func maxOccupancy(rooms []domain.Room) int {
	out := 0
	for _, r := range rooms {
		if r.Occupancy > out {
			out = r.Occupancy
		}
	}
	return out
}

// minPrice returns zero when no tariff exists.
func minPrice(rooms []domain.Room) decimal.Decimal {
	var (
		out   decimal.Decimal
		found bool
	)
	for _, r := range rooms {
		for _, t := range r.Tariffs {
			if !found || t.Price.LessThan(out) {
				out = t.Price
				found = true
			}
		}
	}
	return out
}

func hasFreeInternet(h domain.Home) bool {
	if h.InternetPrice == nil {
		return true
	}
	return h.InternetPrice.IsZero()
}

func parking(h domain.Home) *domain.Parking {
	if !h.HasParking {
		return nil
	}
	if h.ParkingPrice == nil || h.ParkingPrice.IsZero() {
		return &domain.Parking{Free: true, Price: decimal.Zero}
	}
	return &domain.Parking{Price: *h.ParkingPrice}
}

func coords(h domain.Home) *domain.Coords {
	if h.Lat == nil || h.Lon == nil {
		return nil
	}
	return &domain.Coords{Lat: *h.Lat, Lon: *h.Lon}
}
