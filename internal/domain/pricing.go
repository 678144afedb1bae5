package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item priced through the partner rule.
type Product struct {
	ID           uuid.UUID
	PriceGroupID uuid.UUID
	Price        decimal.Decimal // wholesale list price
}

type Partner struct {
	ID               uuid.UUID
	PriceTypePercent decimal.Decimal
}

// DiscountRecord is a signed percent keyed by (price group, partner).
// A negative percent raises the price.
type DiscountRecord struct {
	PriceGroupID uuid.UUID
	PartnerID    uuid.UUID
	Percent      decimal.Decimal
}

// Viewer is one of Guest, Member or PartnerMember.
type Viewer interface {
	Kind() string
}

// Guest is an unauthenticated viewer.
type Guest struct{}

// Member is an authenticated viewer without partner affiliation.
type Member struct {
	SessionKey string
}

// PartnerMember is an authenticated viewer tied to a partner tier.
type PartnerMember struct {
	SessionKey string
	Partner    Partner
}

func (Guest) Kind() string         { return "guest" }
func (Member) Kind() string        { return "member" }
func (PartnerMember) Kind() string { return "partner" }
