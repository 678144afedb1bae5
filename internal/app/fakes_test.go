package app_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

// ---- fakes ----

var deleted = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memStore keeps rows with their delete stamps and filters like the SQL
// layer does, so deleted rows never leave the store.
type memStore struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error

	homes        []domain.Home
	linked       map[uuid.UUID][]uuid.UUID // home -> facility ids
	facilities   []domain.FacilityRow
	categories   []domain.FacilityCategoryRow
	cards        map[uuid.UUID][]domain.CreditCard
	docs         map[uuid.UUID]map[domain.DocumentKind][]string
	children     map[uuid.UUID][]domain.ChildrenRuleRow
	branches     map[uuid.UUID][]domain.Branch
	temperatures map[uuid.UUID][]domain.TemperatureRow
	paid         map[uuid.UUID][]domain.PaidFacilityRow
	programs     map[uuid.UUID][]domain.ProgramRow
	procedures   map[uuid.UUID][]domain.TherapyRow
	profiles     map[uuid.UUID][]domain.TherapyProfile
	images       map[uuid.UUID][]domain.ImageRef
	grades       map[uuid.UUID]domain.GradeSummary
	rooms        map[uuid.UUID][]domain.Room
	roomQueries  []domain.SearchQuery
}

func newMemStore() *memStore {
	return &memStore{
		calls:        map[string]int{},
		fail:         map[string]error{},
		linked:       map[uuid.UUID][]uuid.UUID{},
		cards:        map[uuid.UUID][]domain.CreditCard{},
		docs:         map[uuid.UUID]map[domain.DocumentKind][]string{},
		children:     map[uuid.UUID][]domain.ChildrenRuleRow{},
		branches:     map[uuid.UUID][]domain.Branch{},
		temperatures: map[uuid.UUID][]domain.TemperatureRow{},
		paid:         map[uuid.UUID][]domain.PaidFacilityRow{},
		programs:     map[uuid.UUID][]domain.ProgramRow{},
		procedures:   map[uuid.UUID][]domain.TherapyRow{},
		profiles:     map[uuid.UUID][]domain.TherapyProfile{},
		images:       map[uuid.UUID][]domain.ImageRef{},
		grades:       map[uuid.UUID]domain.GradeSummary{},
		rooms:        map[uuid.UUID][]domain.Room{},
	}
}

func (m *memStore) hit(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	return m.fail[op]
}

func (m *memStore) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *memStore) GetHome(ctx context.Context, id uuid.UUID) (domain.Home, error) {
	if err := m.hit("home"); err != nil {
		return domain.Home{}, err
	}
	for _, h := range m.homes {
		if h.ID == id && domain.Live(h.DeleteStamp) {
			return h, nil
		}
	}
	return domain.Home{}, fmt.Errorf("home %s: %w", id, domain.ErrNotFound)
}

func (m *memStore) GetHomeBySerial(ctx context.Context, serial string) (domain.Home, error) {
	if err := m.hit("home"); err != nil {
		return domain.Home{}, err
	}
	for _, h := range m.homes {
		if h.Serial == serial && domain.Live(h.DeleteStamp) {
			return h, nil
		}
	}
	return domain.Home{}, fmt.Errorf("home %s: %w", serial, domain.ErrNotFound)
}

func (m *memStore) GetHomeBySlug(ctx context.Context, slug string) (domain.Home, error) {
	if err := m.hit("home"); err != nil {
		return domain.Home{}, err
	}
	for _, h := range m.homes {
		if h.Slug == slug && domain.Live(h.DeleteStamp) {
			return h, nil
		}
	}
	return domain.Home{}, fmt.Errorf("home %s: %w", slug, domain.ErrNotFound)
}

func (m *memStore) LinkedFacilities(ctx context.Context, homeID uuid.UUID) ([]domain.FacilityRow, error) {
	if err := m.hit("facilities"); err != nil {
		return nil, err
	}
	var out []domain.FacilityRow
	for _, f := range m.facilities {
		if !domain.Live(f.DeleteStamp) {
			continue
		}
		for _, id := range m.linked[homeID] {
			if id == f.ID {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func (m *memStore) FacilityCategories(ctx context.Context, ids []uuid.UUID) ([]domain.FacilityCategoryRow, error) {
	if err := m.hit("categories"); err != nil {
		return nil, err
	}
	var out []domain.FacilityCategoryRow
	for _, c := range m.categories {
		if !domain.Live(c.DeleteStamp) {
			continue
		}
		for _, id := range ids {
			if id == c.ID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *memStore) CountLinkedFacilitiesLike(ctx context.Context, homeID uuid.UUID, namePart string) (int, error) {
	if err := m.hit("restaurant"); err != nil {
		return 0, err
	}
	rows, _ := m.LinkedFacilities(ctx, homeID)
	n := 0
	for _, f := range rows {
		if strings.Contains(f.Name, namePart) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) AcceptedCreditCards(ctx context.Context, homeID uuid.UUID) ([]domain.CreditCard, error) {
	if err := m.hit("cards"); err != nil {
		return nil, err
	}
	return m.cards[homeID], nil
}

func (m *memStore) DocumentNames(ctx context.Context, homeID uuid.UUID, kind domain.DocumentKind) ([]string, error) {
	if err := m.hit("documents"); err != nil {
		return nil, err
	}
	return m.docs[homeID][kind], nil
}

func (m *memStore) ChildrenRules(ctx context.Context, homeID uuid.UUID) ([]domain.ChildrenRuleRow, error) {
	if err := m.hit("children"); err != nil {
		return nil, err
	}
	var out []domain.ChildrenRuleRow
	for _, r := range m.children[homeID] {
		if domain.Live(r.DeleteStamp) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Branches(ctx context.Context, homeID uuid.UUID) ([]domain.Branch, error) {
	if err := m.hit("branches"); err != nil {
		return nil, err
	}
	return m.branches[homeID], nil
}

func (m *memStore) MonthlyTemperatures(ctx context.Context, cityID uuid.UUID) ([]domain.TemperatureRow, error) {
	if err := m.hit("weather"); err != nil {
		return nil, err
	}
	var out []domain.TemperatureRow
	for _, r := range m.temperatures[cityID] {
		if domain.Live(r.DeleteStamp) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) PaidFacilities(ctx context.Context, homeID uuid.UUID) ([]domain.PaidFacilityRow, error) {
	if err := m.hit("paid"); err != nil {
		return nil, err
	}
	return m.paid[homeID], nil
}

func (m *memStore) TreatmentPrograms(ctx context.Context, homeID uuid.UUID) ([]domain.ProgramRow, error) {
	if err := m.hit("programs"); err != nil {
		return nil, err
	}
	return m.programs[homeID], nil
}

func (m *memStore) TherapyProcedures(ctx context.Context, homeID uuid.UUID) ([]domain.TherapyRow, error) {
	if err := m.hit("procedures"); err != nil {
		return nil, err
	}
	return m.procedures[homeID], nil
}

func (m *memStore) TherapyProfiles(ctx context.Context, homeID uuid.UUID) ([]domain.TherapyProfile, error) {
	if err := m.hit("profiles"); err != nil {
		return nil, err
	}
	return m.profiles[homeID], nil
}

func (m *memStore) Images(ctx context.Context, entityID uuid.UUID) ([]domain.ImageRef, error) {
	if err := m.hit("images"); err != nil {
		return nil, err
	}
	return m.images[entityID], nil
}

func (m *memStore) Grade(ctx context.Context, homeID uuid.UUID) (domain.GradeSummary, error) {
	if err := m.hit("grade"); err != nil {
		return domain.GradeSummary{}, err
	}
	return m.grades[homeID], nil
}

func (m *memStore) Rooms(ctx context.Context, homeID uuid.UUID, q domain.SearchQuery) ([]domain.Room, error) {
	if err := m.hit("rooms"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.roomQueries = append(m.roomQueries, q)
	m.mu.Unlock()
	return m.rooms[homeID], nil
}

// fakePrices backs the price rule.
type fakePrices struct {
	products  map[uuid.UUID]domain.Product
	guest     map[uuid.UUID]decimal.Decimal
	discounts map[[2]uuid.UUID]decimal.Decimal
	viewers   map[string]domain.Viewer
	guestHits int
}

func (f *fakePrices) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePrices) GuestPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	f.guestHits++
	p, ok := f.guest[productID]
	if !ok {
		return decimal.Decimal{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePrices) PartnerDiscount(ctx context.Context, priceGroupID, partnerID uuid.UUID) (domain.DiscountRecord, bool, error) {
	pct, ok := f.discounts[[2]uuid.UUID{priceGroupID, partnerID}]
	if !ok {
		return domain.DiscountRecord{}, false, nil
	}
	return domain.DiscountRecord{PriceGroupID: priceGroupID, PartnerID: partnerID, Percent: pct}, true, nil
}

func (f *fakePrices) ViewerBySession(ctx context.Context, sessionID string) (domain.Viewer, error) {
	if v, ok := f.viewers[sessionID]; ok {
		return v, nil
	}
	return domain.Guest{}, nil
}

type fakeSessions struct {
	store map[string]decimal.Decimal
	sets  int
}

func (s *fakeSessions) Percent(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	v, ok := s.store[key]
	return v, ok, nil
}

func (s *fakeSessions) SetPercent(ctx context.Context, key string, pct decimal.Decimal) error {
	if s.store == nil {
		s.store = map[string]decimal.Decimal{}
	}
	s.store[key] = pct
	s.sets++
	return nil
}

// ---- helpers ----

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func anyQuery() domain.SearchQuery {
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return domain.SearchQuery{DateFrom: from, DateTo: from.AddDate(0, 0, 5), Adults: 2}
}
