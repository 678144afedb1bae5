package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the read side of the relational store. Every method returns live
// rows only; set-membership methods return nothing for an empty id set.
type Store interface {
	GetHome(ctx context.Context, id uuid.UUID) (Home, error)
	GetHomeBySerial(ctx context.Context, serial string) (Home, error)
	GetHomeBySlug(ctx context.Context, slug string) (Home, error)

	LinkedFacilities(ctx context.Context, homeID uuid.UUID) ([]FacilityRow, error)
	FacilityCategories(ctx context.Context, ids []uuid.UUID) ([]FacilityCategoryRow, error)
	CountLinkedFacilitiesLike(ctx context.Context, homeID uuid.UUID, namePart string) (int, error)
	AcceptedCreditCards(ctx context.Context, homeID uuid.UUID) ([]CreditCard, error)
	DocumentNames(ctx context.Context, homeID uuid.UUID, kind DocumentKind) ([]string, error)
	ChildrenRules(ctx context.Context, homeID uuid.UUID) ([]ChildrenRuleRow, error)
	Branches(ctx context.Context, homeID uuid.UUID) ([]Branch, error)
	MonthlyTemperatures(ctx context.Context, cityID uuid.UUID) ([]TemperatureRow, error)
	PaidFacilities(ctx context.Context, homeID uuid.UUID) ([]PaidFacilityRow, error)
	TreatmentPrograms(ctx context.Context, homeID uuid.UUID) ([]ProgramRow, error)
	TherapyProcedures(ctx context.Context, homeID uuid.UUID) ([]TherapyRow, error)
	TherapyProfiles(ctx context.Context, homeID uuid.UUID) ([]TherapyProfile, error)
}

// PriceStore serves the price resolution rule.
type PriceStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (Product, error)
	GuestPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	PartnerDiscount(ctx context.Context, priceGroupID, partnerID uuid.UUID) (DiscountRecord, bool, error)
	ViewerBySession(ctx context.Context, sessionID string) (Viewer, error)
}

type RoomProvider interface {
	Rooms(ctx context.Context, homeID uuid.UUID, q SearchQuery) ([]Room, error)
}

type GradeProvider interface {
	Grade(ctx context.Context, homeID uuid.UUID) (GradeSummary, error)
}

type Gallery interface {
	Images(ctx context.Context, entityID uuid.UUID) ([]ImageRef, error)
}

// SessionStore holds the viewer-scoped partner percent.
type SessionStore interface {
	Percent(ctx context.Context, key string) (decimal.Decimal, bool, error)
	SetPercent(ctx context.Context, key string, pct decimal.Decimal) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

// SearchQuery drives the booking provider. The core does not interpret it
// beyond validation.
type SearchQuery struct {
	DateFrom     time.Time `json:"date_from" validate:"required"`
	DateTo       time.Time `json:"date_to" validate:"required,gtfield=DateFrom"`
	Adults       int       `json:"adults" validate:"min=1,max=20"`
	ChildrenAges []int     `json:"children_ages" validate:"max=10,dive,min=0,max=17"`
	Treatment    bool      `json:"treatment"`
	RoomType     string    `json:"room_type,omitempty" validate:"omitempty,max=64"`
}
