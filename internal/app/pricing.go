package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"home_card/internal/adapters/observability"
	"home_card/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PriceService resolves the price a viewer sees for a product.
type PriceService struct {
	store    domain.PriceStore
	sessions domain.SessionStore
}

func NewPriceService(s domain.PriceStore, sessions domain.SessionStore) *PriceService {
	return &PriceService{store: s, sessions: sessions}
}

// ResolveForSession loads the product and the session's viewer, then
// resolves. An empty session id is a guest.
func (s *PriceService) ResolveForSession(ctx context.Context, sessionID string, productID uuid.UUID) (decimal.Decimal, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	var viewer domain.Viewer = domain.Guest{}
	if sessionID != "" {
		if viewer, err = s.store.ViewerBySession(ctx, sessionID); err != nil {
			return decimal.Decimal{}, err
		}
	}
	return s.Resolve(ctx, viewer, p)
}

func (s *PriceService) Resolve(ctx context.Context, viewer domain.Viewer, p domain.Product) (decimal.Decimal, error) {
	price, err := s.resolve(ctx, viewer, p)
	observability.ObservePrice(viewer.Kind(), err)
	return price, err
}

func (s *PriceService) resolve(ctx context.Context, viewer domain.Viewer, p domain.Product) (decimal.Decimal, error) {
	switch v := viewer.(type) {
	case domain.Guest:
		return s.guestPrice(ctx, p.ID)
	case domain.Member:
		return applyPercent(p.Price, decimal.Zero), nil
	case domain.PartnerMember:
		pct, err := s.partnerPercent(ctx, v)
		if err != nil {
			return decimal.Decimal{}, err
		}
		d, ok, err := s.store.PartnerDiscount(ctx, p.PriceGroupID, v.Partner.ID)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if ok {
			pct = pct.Add(d.Percent)
		}
		return applyPercent(p.Price, pct), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported viewer %T", viewer)
	}
}

// guestPrice returns the stored guest price verbatim. Every sellable product
// must carry one.
func (s *PriceService) guestPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	price, err := s.store.GuestPrice(ctx, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return decimal.Decimal{}, fmt.Errorf("guest price for product %s: %w: %w", productID, domain.ErrDataIntegrity, err)
	}
	return price, err
}

// partnerPercent reads the session-cached percent, seeding it from the
// partner's price type on first use. The cache is never invalidated here.
func (s *PriceService) partnerPercent(ctx context.Context, v domain.PartnerMember) (decimal.Decimal, error) {
	key := sessionPercentKey(v.SessionKey)
	pct, ok, err := s.sessions.Percent(ctx, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if ok {
		return pct, nil
	}
	pct = v.Partner.PriceTypePercent
	if err := s.sessions.SetPercent(ctx, key, pct); err != nil {
		return decimal.Decimal{}, err
	}
	log.Debug().Str("partner", v.Partner.ID.String()).Str("percent", pct.String()).Msg("partner percent cached")
	return pct, nil
}

func sessionPercentKey(sessionKey string) string {
	return "session:" + sessionKey + ":partner_percent"
}

// applyPercent discounts for a positive percent and surcharges for a negative
// one, rounding half away from zero to cents once at the end.
func applyPercent(price, pct decimal.Decimal) decimal.Decimal {
	switch pct.Sign() {
	case 1:
		return price.Sub(price.Mul(pct).Div(hundred)).Round(2)
	case -1:
		return price.Add(price.Mul(pct.Abs()).Div(hundred)).Round(2)
	}
	return price.Round(2)
}
