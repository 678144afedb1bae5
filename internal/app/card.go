package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"home_card/internal/adapters/observability"
	"home_card/internal/domain"
)

// CardService assembles the property view from the store and the external
// providers. It holds no per-request state.
type CardService struct {
	store    domain.Store
	rooms    domain.RoomProvider
	grades   domain.GradeProvider
	gallery  domain.Gallery
	limit    int
	validate *validator.Validate
}

// NewCardService wires the engine; limit bounds concurrent sub-fetches per
// build (<= 0 means unbounded).
func NewCardService(s domain.Store, r domain.RoomProvider, g domain.GradeProvider, gal domain.Gallery, limit int) *CardService {
	return &CardService{
		store:    s,
		rooms:    r,
		grades:   g,
		gallery:  gal,
		limit:    limit,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *CardService) Build(ctx context.Context, homeID uuid.UUID, q domain.SearchQuery) (domain.PropertyView, error) {
	if err := s.checkQuery(q); err != nil {
		return domain.PropertyView{}, err
	}
	h, err := s.store.GetHome(ctx, homeID)
	if err != nil {
		return domain.PropertyView{}, err
	}
	return s.build(ctx, h, q)
}

func (s *CardService) BuildBySerial(ctx context.Context, serial string, q domain.SearchQuery) (domain.PropertyView, error) {
	if err := s.checkQuery(q); err != nil {
		return domain.PropertyView{}, err
	}
	h, err := s.store.GetHomeBySerial(ctx, serial)
	if err != nil {
		return domain.PropertyView{}, err
	}
	return s.build(ctx, h, q)
}

// BuildBySlug resolves the home by its URL slug.
func (s *CardService) BuildBySlug(ctx context.Context, slug string, q domain.SearchQuery) (domain.PropertyView, error) {
	if err := s.checkQuery(q); err != nil {
		return domain.PropertyView{}, err
	}
	h, err := s.store.GetHomeBySlug(ctx, slug)
	if err != nil {
		return domain.PropertyView{}, err
	}
	return s.build(ctx, h, q)
}

func (s *CardService) checkQuery(q domain.SearchQuery) error {
	if err := s.validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	return nil
}

// build fans out every sub-fetch; the first failure cancels the rest and no
// partial view is returned.
func (s *CardService) build(ctx context.Context, h domain.Home, q domain.SearchQuery) (domain.PropertyView, error) {
	start := time.Now()

	v := domain.PropertyView{
		ID:              h.ID,
		Name:            h.Name,
		Serial:          h.Serial,
		Address:         h.Address,
		Coords:          coords(h),
		Description:     h.Description,
		RestaurantText:  h.Restaurant,
		DistanceToBeach: formatDistance(h.BeachDistance),
		RoomsCount:      h.RoomsCount,
		Treatment:       q.Treatment,
		HasFreeInternet: hasFreeInternet(h),
		Parking:         parking(h),
		Rules: domain.Rules{
			CheckInFrom:  formatTime(h.CheckInFrom),
			CheckInTo:    formatTime(h.CheckInTo),
			CheckOutFrom: formatTime(h.CheckOutFrom),
			CheckOutTo:   formatTime(h.CheckOutTo),
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	part := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				observability.ObserveCardPartFailure(name)
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	// each closure owns a distinct field of v
	part("images", func() error {
		refs, err := s.gallery.Images(gctx, h.ID)
		v.Images = urls(refs)
		return err
	})
	part("credit_cards", func() (err error) { v.CreditCards, err = s.creditCards(gctx, h.ID); return })
	part("documents", func() (err error) { v.Documents, err = s.documents(gctx, h.ID); return })
	part("children_rules", func() (err error) { v.Rules.Children, err = s.childrenRules(gctx, h.ID); return })
	part("facilities", func() (err error) { v.Facilities, err = s.facilities(gctx, h.ID); return })
	part("paid_facilities", func() (err error) { v.PaidFacilities, err = s.paidFacilities(gctx, h.ID); return })
	part("restaurant", func() (err error) { v.HasRestaurant, err = s.hasRestaurant(gctx, h.ID); return })
	part("grade", func() (err error) { v.Grade, err = s.grades.Grade(gctx, h.ID); return })
	part("therapy", func() (err error) { v.Therapy, err = s.therapy(gctx, h.ID); return })
	part("programs", func() (err error) { v.Programs, err = s.programs(gctx, h.ID); return })
	part("branches", func() (err error) { v.Branches, err = s.branches(gctx, h.ID); return })
	part("weather", func() (err error) { v.Weather, err = s.weather(gctx, h.CityID); return })
	part("rooms", func() error {
		rooms, err := s.rooms.Rooms(gctx, h.ID, q)
		v.Rooms = orEmpty(rooms)
		return err
	})

	if err := g.Wait(); err != nil {
		observability.ObserveCardBuild(err, time.Since(start))
		log.Warn().Err(err).Str("home", h.ID.String()).Msg("card build failed")
		return domain.PropertyView{}, err
	}

	v.MaxOccupancy = maxOccupancy(v.Rooms)
	v.MinPrice = minPrice(v.Rooms)

	observability.ObserveCardBuild(nil, time.Since(start))
	log.Debug().
		Str("home", h.ID.String()).
		Int("rooms", len(v.Rooms)).
		Dur("duration", time.Since(start)).
		Msg("card built")
	return v, nil
}
